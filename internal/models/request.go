package models

type SubmitProjectRequest struct {
	Title        string   `json:"title"`
	Background   string   `json:"background"`
	Technology   string   `json:"technology"`
	Benefits     string   `json:"benefits"`
	Application  string   `json:"application,omitempty"`
	Tags         []string `json:"tags"`
	Year         string   `json:"year"`
	// Collaborator student IDs in addition to the submitting student.
	Collaborators []string `json:"collaborators,omitempty"`
}

type UpdateProjectRequest struct {
	Title       string   `json:"title"`
	Background  string   `json:"background"`
	Technology  string   `json:"technology"`
	Benefits    string   `json:"benefits"`
	Application string   `json:"application,omitempty"`
	Tags        []string `json:"tags"`
	Year        string   `json:"year"`
	// Full collaborator set after the edit; diffed against the stored set.
	Collaborators []string `json:"collaborators"`
	// Paths of existing attachment images to drop.
	RemoveImages []string `json:"remove_images,omitempty"`
	// Admin-only: set the status directly instead of demoting to PendingEdit.
	Status string `json:"status,omitempty"`
}

type RejectProjectRequest struct {
	Reason string `json:"reason"`
}

type ModCommentRequest struct {
	Comment string `json:"comment"`
}

type CreateInterestRequest struct {
	ProjectID       string `json:"project_id"`
	InvestorName    string `json:"investor_name"`
	InvestorEmail   string `json:"investor_email"`
	InvestorPhone   string `json:"investor_phone"`
	InvestorCompany string `json:"investor_company"`
	InvestorReason  string `json:"investor_reason"`
	Message         string `json:"message"`
}

type TriageInterestRequest struct {
	StatusCategory string `json:"status_category"`
	Status         string `json:"status,omitempty"`
	ModComments    string `json:"mod_comments,omitempty"`
}

type UpdateStudentRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Degree    string `json:"degree,omitempty"`
}

type CreateDegreeRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

type CreateReasonRequest struct {
	Name string `json:"name"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
