package drafts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"innovation-gallery-backend/internal/models"
)

// fakeStore records every mutation in order and serves projects, students and
// join rows from memory.
type fakeStore struct {
	projects map[uuid.UUID]models.Project
	students map[uuid.UUID]models.Student
	joins    map[uuid.UUID]models.ProjectStudent
	ops      []string
	failOn   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: map[uuid.UUID]models.Project{},
		students: map[uuid.UUID]models.Student{},
		joins:    map[uuid.UUID]models.ProjectStudent{},
	}
}

func (f *fakeStore) op(name string) error {
	f.ops = append(f.ops, name)
	if f.failOn == name {
		return errors.New("induced failure")
	}
	return nil
}

func (f *fakeStore) GetProject(id uuid.UUID) (models.Project, error) {
	if err := f.op("get"); err != nil {
		return models.Project{}, err
	}
	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, errors.New("not found")
	}
	return p, nil
}

func (f *fakeStore) CreateProject(p models.Project) (models.Project, error) {
	if err := f.op("create"); err != nil {
		return models.Project{}, err
	}
	p.ID = uuid.New()
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeStore) UpdateProject(id uuid.UUID, patch map[string]interface{}) (models.Project, error) {
	if err := f.op("update"); err != nil {
		return models.Project{}, err
	}
	p := f.projects[id]
	if v, ok := patch["title"].(string); ok {
		p.Title = v
	}
	if v, ok := patch["status"].(string); ok {
		p.Status = v
	}
	if v, ok := patch["cover_image_path"].(string); ok {
		p.CoverImagePath = v
	}
	if v, ok := patch["other_image_paths"].([]string); ok {
		p.OtherImagePaths = v
	}
	if v, ok := patch["owners"].([]string); ok {
		p.Owners = v
	}
	f.projects[id] = p
	return p, nil
}

func (f *fakeStore) Collaborators(projectID uuid.UUID) ([]models.ProjectStudent, error) {
	if err := f.op("joins"); err != nil {
		return nil, err
	}
	var out []models.ProjectStudent
	for _, j := range f.joins {
		if j.ProjectID == projectID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeStore) AddCollaborator(projectID, studentID uuid.UUID) (models.ProjectStudent, error) {
	if err := f.op("add-join:" + studentID.String()[:8]); err != nil {
		return models.ProjectStudent{}, err
	}
	j := models.ProjectStudent{ID: uuid.New(), ProjectID: projectID, StudentID: studentID}
	f.joins[j.ID] = j
	return j, nil
}

func (f *fakeStore) RemoveCollaborator(joinID uuid.UUID) error {
	if err := f.op("remove-join"); err != nil {
		return err
	}
	delete(f.joins, joinID)
	return nil
}

func (f *fakeStore) GetStudent(id uuid.UUID) (models.Student, error) {
	if err := f.op("student"); err != nil {
		return models.Student{}, err
	}
	s, ok := f.students[id]
	if !ok {
		return models.Student{}, errors.New("not found")
	}
	return s, nil
}

type fakeBlobs struct {
	uploads []string
	removes []string
	failOn  string
}

func (f *fakeBlobs) Upload(path string, data []byte) (string, error) {
	if f.failOn == "upload" {
		return "", errors.New("upload failed")
	}
	f.uploads = append(f.uploads, path)
	return path, nil
}

func (f *fakeBlobs) Remove(path string) error {
	if f.failOn == "remove" {
		return errors.New("remove failed")
	}
	f.removes = append(f.removes, path)
	return nil
}

func (f *fakeStore) addStudent(owner string) models.Student {
	s := models.Student{ID: uuid.New(), ProfileOwner: owner}
	f.students[s.ID] = s
	return s
}

func validDraft(store *fakeStore, blobs *fakeBlobs) *Editor {
	e := NewEditor(store, blobs)
	e.SetFields("Solar Sensor Grid", "<p>Background</p>", "<p>Tech</p>", "<p>Benefits</p>", "", "2025")
	e.SetTags([]string{"Energy"})
	e.ReplaceCover("cover.jpg", []byte("jpg"))
	return e
}

func TestSaveCreatesProjectAndUploadsImages(t *testing.T) {
	store := newFakeStore()
	blobs := &fakeBlobs{}
	student := store.addStudent("user-1")

	e := validDraft(store, blobs)
	e.AttachImage("extra.png", []byte("png"))
	e.AddCollaborator(student.ID)

	saved, err := e.Save()
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, saved.ID)

	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Equal(t, fmt.Sprintf("images/projects/%s/cover", saved.ID), saved.CoverImagePath)
	assert.Equal(t, []string{fmt.Sprintf("images/projects/%s/other/extra.png", saved.ID)}, saved.OtherImagePaths)
	assert.Equal(t, []string{"user-1"}, saved.Owners)
	assert.Len(t, blobs.uploads, 2)
}

func TestSaveRequiresValidDraft(t *testing.T) {
	store := newFakeStore()
	e := NewEditor(store, &fakeBlobs{})
	e.SetFields("", "", "", "", "", "")

	_, err := e.Save()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
	// Validation failure must precede any remote call.
	assert.Empty(t, store.ops)
}

func TestSaveRejectsEmptyRichText(t *testing.T) {
	store := newFakeStore()
	e := NewEditor(store, &fakeBlobs{})
	e.SetFields("Title", "<p><br></p>", "x", "x", "", "2025")
	e.SetTags([]string{"Energy"})
	e.ReplaceCover("c.jpg", nil)

	_, err := e.Save()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "background", verr.Field)
}

func TestTagCap(t *testing.T) {
	e := NewEditor(newFakeStore(), &fakeBlobs{})
	for i := 0; i < models.MaxProjectTags; i++ {
		require.NoError(t, e.AddTag(fmt.Sprintf("tag-%d", i)))
	}
	assert.ErrorIs(t, e.AddTag("one-too-many"), ErrTagLimit)
	assert.Len(t, e.Tags(), models.MaxProjectTags)

	// Re-adding an existing tag is a no-op, not an error.
	require.NoError(t, e.AddTag("tag-0"))

	assert.ErrorIs(t, e.SetTags(make([]string, models.MaxProjectTags+1)), ErrTagLimit)
	assert.Len(t, e.Tags(), models.MaxProjectTags)
}

func TestSaveDiffsCollaborators(t *testing.T) {
	store := newFakeStore()
	blobs := &fakeBlobs{}
	s1 := store.addStudent("u1")
	s2 := store.addStudent("u2")
	s3 := store.addStudent("u3")

	// Existing project with collaborators s1, s2.
	project := models.Project{
		ID:             uuid.New(),
		Title:          "Grid",
		Background:     "b",
		Technology:     "t",
		Benefits:       "x",
		Year:           "2024",
		Tags:           []string{"Energy"},
		Status:         models.StatusPending,
		CoverImagePath: "images/projects/p/cover",
	}
	store.projects[project.ID] = project
	j1, _ := store.AddCollaborator(project.ID, s1.ID)
	store.AddCollaborator(project.ID, s2.ID)

	e, err := Load(store, blobs, project.ID)
	require.NoError(t, err)
	store.ops = nil

	// Keep s2, drop s1, add s3.
	e.RemoveCollaborator(s1.ID)
	e.AddCollaborator(s3.ID)

	saved, err := e.Save()
	require.NoError(t, err)

	_, stillJoined := store.joins[j1.ID]
	assert.False(t, stillJoined)
	assert.Len(t, store.joins, 2)
	assert.ElementsMatch(t, []string{"u2", "u3"}, saved.Owners)

	// Exactly one join delete and one join create.
	removes, adds := 0, 0
	for _, op := range store.ops {
		switch {
		case op == "remove-join":
			removes++
		case len(op) > 8 && op[:8] == "add-join":
			adds++
		}
	}
	assert.Equal(t, 1, removes)
	assert.Equal(t, 1, adds)
}

func TestSaveDemotesApprovedToPendingEdit(t *testing.T) {
	store := newFakeStore()
	project := models.Project{
		ID:             uuid.New(),
		Title:          "Grid",
		Background:     "b",
		Technology:     "t",
		Benefits:       "x",
		Year:           "2024",
		Tags:           []string{"Energy"},
		Status:         models.StatusApproved,
		CoverImagePath: "images/projects/p/cover",
	}
	store.projects[project.ID] = project

	e, err := Load(store, &fakeBlobs{}, project.ID)
	require.NoError(t, err)

	saved, err := e.Save()
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingEdit, saved.Status)
}

func TestSaveAdminStatusOverridesDemotion(t *testing.T) {
	store := newFakeStore()
	project := models.Project{
		ID:             uuid.New(),
		Title:          "Grid",
		Background:     "b",
		Technology:     "t",
		Benefits:       "x",
		Year:           "2024",
		Tags:           []string{"Energy"},
		Status:         models.StatusApproved,
		CoverImagePath: "images/projects/p/cover",
	}
	store.projects[project.ID] = project

	e, err := Load(store, &fakeBlobs{}, project.ID)
	require.NoError(t, err)
	e.SetStatus(models.StatusApproved)

	saved, err := e.Save()
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, saved.Status)
}

func TestSaveReplacesCoverBlobs(t *testing.T) {
	store := newFakeStore()
	blobs := &fakeBlobs{}
	project := models.Project{
		ID:             uuid.New(),
		Title:          "Grid",
		Background:     "b",
		Technology:     "t",
		Benefits:       "x",
		Year:           "2024",
		Tags:           []string{"Energy"},
		Status:         models.StatusPending,
		CoverImagePath: "images/projects/old/cover",
	}
	store.projects[project.ID] = project

	e, err := Load(store, blobs, project.ID)
	require.NoError(t, err)
	e.ReplaceCover("new.jpg", []byte("jpg"))

	_, err = e.Save()
	require.NoError(t, err)
	assert.Equal(t, []string{"images/projects/old/cover"}, blobs.removes)
	assert.Equal(t, []string{fmt.Sprintf("images/projects/%s/cover", project.ID)}, blobs.uploads)
}

func TestSavePartialCommitNamesStep(t *testing.T) {
	store := newFakeStore()
	blobs := &fakeBlobs{failOn: "upload"}

	e := validDraft(store, blobs)
	e.AttachImage("extra.png", []byte("png"))

	_, err := e.Save()
	var partial *PartialCommitError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "upload-image", partial.Step)

	// The project row was already created; no rollback is attempted.
	assert.Len(t, store.projects, 1)
}

func TestSaveUpdateFailureSurfacesStep(t *testing.T) {
	store := newFakeStore()
	store.failOn = "update"

	e := validDraft(store, &fakeBlobs{})
	_, err := e.Save()
	var partial *PartialCommitError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "update-project", partial.Step)
}

func TestRemoveImageDropsStagedUpload(t *testing.T) {
	store := newFakeStore()
	blobs := &fakeBlobs{}

	e := validDraft(store, blobs)
	e.AttachImage("oops.png", []byte("png"))
	e.RemoveImage("oops.png")

	saved, err := e.Save()
	require.NoError(t, err)
	assert.Empty(t, saved.OtherImagePaths)
	// Only the cover went to storage.
	assert.Len(t, blobs.uploads, 1)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "", StripHTML("<p><br></p>"))
	assert.Equal(t, "", StripHTML("  <div>\n</div> "))
	assert.Equal(t, "hello", StripHTML("<p>hello</p>"))
	assert.Equal(t, "a & b", StripHTML("<b>a &amp; b</b>"))
}
