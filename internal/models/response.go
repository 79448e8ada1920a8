package models

import "time"

type ProjectResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Background     string           `json:"background"`
	Technology     string           `json:"technology"`
	Benefits       string           `json:"benefits"`
	Application    string           `json:"application,omitempty"`
	Tags           []string         `json:"tags"`
	Year           string           `json:"year"`
	Status         string           `json:"status"`
	CoverImageURL  string           `json:"cover_image_url,omitempty"`
	OtherImageURLs []string         `json:"other_image_urls,omitempty"`
	ModComments    string           `json:"mod_comments,omitempty"`
	RejectReason   string           `json:"reject_reason,omitempty"`
	Collaborators  []StudentSummary `json:"collaborators,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type ProjectSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Comments  string    `json:"comments,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StudentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type InterestSummary struct {
	ID              string    `json:"id"`
	InvestorName    string    `json:"investor_name"`
	InvestorCompany string    `json:"investor_company"`
	InvestorEmail   string    `json:"investor_email"`
	StatusCategory  string    `json:"status_category"`
	Status          string    `json:"status,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// PageResponse is the shared envelope for the paged admin tables. Page is the
// zero-based index of the page being shown; HasMore reports whether Next is
// available.
type PageResponse struct {
	Items   interface{} `json:"items"`
	Page    int         `json:"page"`
	HasMore bool        `json:"has_more"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
