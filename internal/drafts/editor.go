// Package drafts stages local edits to a project, its image attachments and
// its collaborator set, and commits them as an ordered sequence of remote
// operations. There is no transactional guarantee across the sequence; a
// mid-sequence failure surfaces as a PartialCommitError.
package drafts

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"innovation-gallery-backend/internal/models"
)

// Store is the slice of the data service the editor commits through.
type Store interface {
	GetProject(id uuid.UUID) (models.Project, error)
	CreateProject(p models.Project) (models.Project, error)
	UpdateProject(id uuid.UUID, patch map[string]interface{}) (models.Project, error)
	Collaborators(projectID uuid.UUID) ([]models.ProjectStudent, error)
	AddCollaborator(projectID, studentID uuid.UUID) (models.ProjectStudent, error)
	RemoveCollaborator(joinID uuid.UUID) error
	GetStudent(id uuid.UUID) (models.Student, error)
}

// BlobStore is the object storage collaborator.
type BlobStore interface {
	Upload(path string, data []byte) (string, error)
	Remove(path string) error
}

// Image is one entry in the working set of a project's additional images.
type Image struct {
	Path     string // storage path; empty until a new image is uploaded
	Filename string
	Data     []byte
	IsNew    bool
	ToDelete bool
}

type Editor struct {
	store Store
	blobs BlobStore

	draft       models.Project
	priorStatus string
	adminStatus string

	images        []Image
	newCover      *Image
	originalCover string

	selected map[uuid.UUID]bool
	original map[uuid.UUID]uuid.UUID // studentID -> join row id at load time
}

// NewEditor starts a blank draft for a fresh submission.
func NewEditor(store Store, blobs BlobStore) *Editor {
	return &Editor{
		store:    store,
		blobs:    blobs,
		draft:    models.Project{Status: models.StatusPending},
		selected: make(map[uuid.UUID]bool),
		original: make(map[uuid.UUID]uuid.UUID),
	}
}

// Load opens an existing project for editing, fetching the current row and
// its collaborator join rows.
func Load(store Store, blobs BlobStore, projectID uuid.UUID) (*Editor, error) {
	project, err := store.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	joins, err := store.Collaborators(projectID)
	if err != nil {
		return nil, fmt.Errorf("load collaborators: %w", err)
	}

	e := &Editor{
		store:         store,
		blobs:         blobs,
		draft:         project,
		priorStatus:   project.Status,
		originalCover: project.CoverImagePath,
		selected:      make(map[uuid.UUID]bool),
		original:      make(map[uuid.UUID]uuid.UUID),
	}
	for _, join := range joins {
		e.selected[join.StudentID] = true
		e.original[join.StudentID] = join.ID
	}
	for _, path := range project.OtherImagePaths {
		e.images = append(e.images, Image{Path: path})
	}
	return e, nil
}

// Draft returns a copy of the working project fields.
func (e *Editor) Draft() models.Project {
	return e.draft
}

func (e *Editor) SetFields(title, background, technology, benefits, application, year string) {
	e.draft.Title = title
	e.draft.Background = background
	e.draft.Technology = technology
	e.draft.Benefits = benefits
	e.draft.Application = application
	e.draft.Year = year
}

// AddTag appends a tag, refusing past the cap without altering the set.
func (e *Editor) AddTag(tag string) error {
	for _, t := range e.draft.Tags {
		if t == tag {
			return nil
		}
	}
	if len(e.draft.Tags) >= models.MaxProjectTags {
		return ErrTagLimit
	}
	e.draft.Tags = append(e.draft.Tags, tag)
	return nil
}

// SetTags replaces the tag set wholesale; an over-cap set is rejected and the
// current set kept.
func (e *Editor) SetTags(tags []string) error {
	if len(tags) > models.MaxProjectTags {
		return ErrTagLimit
	}
	e.draft.Tags = append([]string(nil), tags...)
	return nil
}

func (e *Editor) RemoveTag(tag string) {
	tags := e.draft.Tags[:0]
	for _, t := range e.draft.Tags {
		if t != tag {
			tags = append(tags, t)
		}
	}
	e.draft.Tags = tags
}

func (e *Editor) Tags() []string {
	return append([]string(nil), e.draft.Tags...)
}

// AttachImage stages a new additional image for upload on save.
func (e *Editor) AttachImage(filename string, data []byte) {
	e.images = append(e.images, Image{Filename: filename, Data: data, IsNew: true})
}

// RemoveImage flags an existing image for deletion, or drops a staged new
// one outright.
func (e *Editor) RemoveImage(path string) {
	for i := range e.images {
		img := &e.images[i]
		if img.Path == path || (img.IsNew && img.Filename == path) {
			img.ToDelete = true
			return
		}
	}
}

// ReplaceCover stages a new cover image. The old cover blob, if any, is
// deleted during save.
func (e *Editor) ReplaceCover(filename string, data []byte) {
	e.newCover = &Image{Filename: filename, Data: data, IsNew: true}
}

func (e *Editor) SetCollaborators(ids []uuid.UUID) {
	e.selected = make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		e.selected[id] = true
	}
}

func (e *Editor) AddCollaborator(id uuid.UUID) {
	e.selected[id] = true
}

func (e *Editor) RemoveCollaborator(id uuid.UUID) {
	delete(e.selected, id)
}

func (e *Editor) Collaborators() []uuid.UUID {
	return sortedIDs(e.selected)
}

// SetStatus is the admin/moderator path: the given status is written as-is
// on save instead of demoting an Approved project to PendingEdit.
func (e *Editor) SetStatus(status string) {
	e.adminStatus = status
}

func (e *Editor) SetModComments(comments string) {
	e.draft.ModComments = comments
}

func (e *Editor) SetRejectReason(reason string) {
	e.draft.RejectReason = reason
}

func coverPath(projectID uuid.UUID) string {
	return fmt.Sprintf("images/projects/%s/cover", projectID.String())
}

func otherPath(projectID uuid.UUID, filename string) string {
	return fmt.Sprintf("images/projects/%s/other/%s", projectID.String(), filename)
}

// Save validates the draft and applies it as an ordered sequence of remote
// operations: image uploads and deletes, cover replacement, collaborator
// join-row diff, owner recompute, then a single project update. Steps after
// the first are not rolled back on failure; see PartialCommitError.
func (e *Editor) Save() (models.Project, error) {
	if err := e.Validate(); err != nil {
		return models.Project{}, err
	}

	if e.draft.ID == uuid.Nil {
		created, err := e.store.CreateProject(models.Project{
			Title:       e.draft.Title,
			Background:  e.draft.Background,
			Technology:  e.draft.Technology,
			Benefits:    e.draft.Benefits,
			Application: e.draft.Application,
			Tags:        e.draft.Tags,
			Year:        e.draft.Year,
			Status:      models.StatusPending,
		})
		if err != nil {
			return models.Project{}, &PartialCommitError{Step: "create-project", Err: err}
		}
		e.draft.ID = created.ID
		e.priorStatus = created.Status
	}

	// Additional images: upload staged ones, delete flagged ones, carry the
	// rest forward unchanged.
	otherPaths := make([]string, 0, len(e.images))
	for i := range e.images {
		img := &e.images[i]
		switch {
		case img.IsNew && !img.ToDelete:
			path, err := e.blobs.Upload(otherPath(e.draft.ID, img.Filename), img.Data)
			if err != nil {
				return models.Project{}, &PartialCommitError{Step: "upload-image", Err: err}
			}
			img.Path = path
			otherPaths = append(otherPaths, path)
		case img.ToDelete && !img.IsNew:
			if err := e.blobs.Remove(img.Path); err != nil {
				return models.Project{}, &PartialCommitError{Step: "delete-image", Err: err}
			}
		case !img.IsNew && !img.ToDelete:
			otherPaths = append(otherPaths, img.Path)
		}
	}

	// Cover replacement: drop the old blob first, then upload under the
	// fixed cover path.
	if e.newCover != nil {
		if e.originalCover != "" {
			if err := e.blobs.Remove(e.originalCover); err != nil {
				return models.Project{}, &PartialCommitError{Step: "replace-cover", Err: err}
			}
		}
		path, err := e.blobs.Upload(coverPath(e.draft.ID), e.newCover.Data)
		if err != nil {
			return models.Project{}, &PartialCommitError{Step: "replace-cover", Err: err}
		}
		e.draft.CoverImagePath = path
	}

	// Collaborator diff: one delete per removed student, one create per
	// added student; untouched students keep their join rows.
	for _, studentID := range sortedIDs(e.original) {
		if e.selected[studentID] {
			continue
		}
		if err := e.store.RemoveCollaborator(e.original[studentID]); err != nil {
			return models.Project{}, &PartialCommitError{Step: "remove-collaborator", Err: err}
		}
		delete(e.original, studentID)
	}
	for _, studentID := range sortedIDs(e.selected) {
		if _, ok := e.original[studentID]; ok {
			continue
		}
		join, err := e.store.AddCollaborator(e.draft.ID, studentID)
		if err != nil {
			return models.Project{}, &PartialCommitError{Step: "add-collaborator", Err: err}
		}
		e.original[studentID] = join.ID
	}

	// Owner recompute: the remaining collaborators' profile owners feed the
	// backend's row-level ownership rule.
	owners := make([]string, 0, len(e.selected))
	for _, studentID := range sortedIDs(e.selected) {
		student, err := e.store.GetStudent(studentID)
		if err != nil {
			return models.Project{}, &PartialCommitError{Step: "resolve-owner", Err: err}
		}
		if student.ProfileOwner != "" {
			owners = append(owners, student.ProfileOwner)
		}
	}

	status := e.draft.Status
	if e.adminStatus != "" {
		status = e.adminStatus
	} else if e.priorStatus == models.StatusApproved {
		// Edits to a live project go back through review.
		status = models.StatusPendingEdit
	}

	patch := map[string]interface{}{
		"title":             e.draft.Title,
		"background":        e.draft.Background,
		"technology":        e.draft.Technology,
		"benefits":          e.draft.Benefits,
		"application":       e.draft.Application,
		"tags":              e.draft.Tags,
		"year":              e.draft.Year,
		"cover_image_path":  e.draft.CoverImagePath,
		"other_image_paths": otherPaths,
		"owners":            owners,
		"status":            status,
		"mod_comments":      e.draft.ModComments,
		"reject_reason":     e.draft.RejectReason,
	}
	if _, err := e.store.UpdateProject(e.draft.ID, patch); err != nil {
		return models.Project{}, &PartialCommitError{Step: "update-project", Err: err}
	}

	// The server may normalize fields, so refresh the draft from the source
	// of truth rather than trusting the local copy.
	saved, err := e.store.GetProject(e.draft.ID)
	if err != nil {
		return models.Project{}, &PartialCommitError{Step: "refresh", Err: err}
	}

	e.draft = saved
	e.priorStatus = saved.Status
	e.originalCover = saved.CoverImagePath
	e.newCover = nil
	e.adminStatus = ""
	e.images = e.images[:0]
	for _, path := range saved.OtherImagePaths {
		e.images = append(e.images, Image{Path: path})
	}
	return saved, nil
}

func sortedIDs[V any](m map[uuid.UUID]V) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
