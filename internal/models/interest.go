package models

import (
	"time"

	"github.com/google/uuid"
)

// Status categories bucket investor interest submissions for triage.
// The freeform Status field carries the finer-grained state within a bucket.
const (
	CategoryNew      = "New"
	CategoryPending  = "Pending"
	CategoryClosed   = "Closed"
	CategoryRejected = "Rejected"
)

type InvestorInterest struct {
	ID              uuid.UUID `json:"id"`
	ProjectID       uuid.UUID `json:"project_id"`
	InvestorName    string    `json:"investor_name"`
	InvestorEmail   string    `json:"investor_email"`
	InvestorPhone   string    `json:"investor_phone"`
	InvestorCompany string    `json:"investor_company"`
	InvestorReason  string    `json:"investor_reason"`
	Message         string    `json:"message"`
	ModComments     string    `json:"mod_comments"`
	StatusCategory  string    `json:"status_category"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
