package datastore

import (
	"time"

	"github.com/google/uuid"
	"innovation-gallery-backend/internal/models"
	"innovation-gallery-backend/internal/supabase"
)

// Store bundles the typed collections behind the data service. It is
// constructed once in main and injected into whatever needs it.
type Store struct {
	Projects        *Collection[models.Project]
	Students        *Collection[models.Student]
	ProjectStudents *Collection[models.ProjectStudent]
	Interests       *Collection[models.InvestorInterest]
	Degrees         *Collection[models.Degree]
	Tags            *Collection[models.Tag]
	Reasons         *Collection[models.ContactReason]
}

func NewStore(client *supabase.Client) *Store {
	sb := client.Supabase
	return &Store{
		Projects: NewCollection(sb, "projects", func(p models.Project) (time.Time, uuid.UUID) {
			return p.CreatedAt, p.ID
		}),
		Students: NewCollection(sb, "students", func(s models.Student) (time.Time, uuid.UUID) {
			return s.CreatedAt, s.ID
		}),
		ProjectStudents: NewCollection(sb, "projects_students", func(ps models.ProjectStudent) (time.Time, uuid.UUID) {
			return ps.CreatedAt, ps.ID
		}),
		Interests: NewCollection(sb, "investor_interest", func(i models.InvestorInterest) (time.Time, uuid.UUID) {
			return i.CreatedAt, i.ID
		}),
		Degrees: NewCollection(sb, "degrees", func(d models.Degree) (time.Time, uuid.UUID) {
			return d.CreatedAt, d.ID
		}),
		Tags: NewCollection(sb, "tags", func(t models.Tag) (time.Time, uuid.UUID) {
			return t.CreatedAt, t.ID
		}),
		Reasons: NewCollection(sb, "contact_reasons", func(r models.ContactReason) (time.Time, uuid.UUID) {
			return r.CreatedAt, r.ID
		}),
	}
}

// The methods below give the draft editor its narrow view of the store.

func (s *Store) GetProject(id uuid.UUID) (models.Project, error) {
	return s.Projects.Get(id)
}

func (s *Store) CreateProject(p models.Project) (models.Project, error) {
	return s.Projects.Create(p)
}

func (s *Store) UpdateProject(id uuid.UUID, patch map[string]interface{}) (models.Project, error) {
	return s.Projects.Update(id, patch)
}

// Collaborators returns the join rows for a project.
func (s *Store) Collaborators(projectID uuid.UUID) ([]models.ProjectStudent, error) {
	return s.ProjectStudents.ListAll(Where("project_id", OpEq, projectID.String()))
}

func (s *Store) AddCollaborator(projectID, studentID uuid.UUID) (models.ProjectStudent, error) {
	return s.ProjectStudents.Create(models.ProjectStudent{ProjectID: projectID, StudentID: studentID})
}

func (s *Store) RemoveCollaborator(joinID uuid.UUID) error {
	return s.ProjectStudents.Delete(joinID)
}

func (s *Store) GetStudent(id uuid.UUID) (models.Student, error) {
	return s.Students.Get(id)
}

// StudentByProfileOwner resolves the student record linked to an auth
// identity, as created by the signup confirmation hook.
func (s *Store) StudentByProfileOwner(owner string) (models.Student, error) {
	rows, err := s.Students.ListAll(Where("profile_owner", OpEq, owner))
	if err != nil {
		return models.Student{}, err
	}
	if len(rows) == 0 {
		return models.Student{}, ErrNotFound
	}
	return rows[0], nil
}
