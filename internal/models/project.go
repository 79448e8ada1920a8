package models

import (
	"time"

	"github.com/google/uuid"
)

// Project lifecycle statuses. A student submission starts Pending; moderators
// move it to Approved or Rejected. Edits to an Approved project demote it to
// PendingEdit until re-reviewed.
const (
	StatusPending     = "Pending"
	StatusApproved    = "Approved"
	StatusRejected    = "Rejected"
	StatusPendingEdit = "PendingEdit"
)

// MaxProjectTags caps the industry tag list on a project.
const MaxProjectTags = 5

type Project struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Background      string    `json:"background"`
	Technology      string    `json:"technology"`
	Benefits        string    `json:"benefits"`
	Application     string    `json:"application"`
	Tags            []string  `json:"tags"`
	Year            string    `json:"year"`
	Status          string    `json:"status"`
	CoverImagePath  string    `json:"cover_image_path"`
	OtherImagePaths []string  `json:"other_image_paths"`
	ModComments     string    `json:"mod_comments"`
	RejectReason    string    `json:"reject_reason"`
	Owners          []string  `json:"owners"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProjectStudent is the join row linking a project to a collaborating student.
type ProjectStudent struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	StudentID uuid.UUID `json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
}
