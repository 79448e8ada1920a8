package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/drafts"
	"innovation-gallery-backend/internal/middleware"
	"innovation-gallery-backend/internal/models"
	"innovation-gallery-backend/internal/supabase"
)

type ProjectsHandler struct {
	store          *datastore.Store
	storageClient  *supabase.StorageClient
	realtimeClient *supabase.RealtimeClient
}

func NewProjectsHandler(store *datastore.Store, storageClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *ProjectsHandler {
	return &ProjectsHandler{
		store:          store,
		storageClient:  storageClient,
		realtimeClient: realtimeClient,
	}
}

// SubmitProject creates a new Pending project from the multipart submission
// form: text fields, tags, a cover image, optional additional images, and
// collaborator student ids. The submitting student is always a collaborator.
func (h *ProjectsHandler) SubmitProject(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	editor := drafts.NewEditor(h.store, h.storageClient)
	editor.SetFields(
		c.PostForm("title"),
		c.PostForm("background"),
		c.PostForm("technology"),
		c.PostForm("benefits"),
		c.PostForm("application"),
		c.PostForm("year"),
	)
	if err := editor.SetTags(c.PostFormArray("tags")); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	form := c.Request.MultipartForm
	if covers := form.File["cover"]; len(covers) > 0 {
		data, err := readFormFile(covers[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read cover image", Message: err.Error()})
			return
		}
		editor.ReplaceCover(covers[0].Filename, data)
	}
	for _, header := range form.File["images"] {
		data, err := readFormFile(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read image", Message: err.Error()})
			return
		}
		editor.AttachImage(header.Filename, data)
	}

	// The submitter's own student record joins the collaborator set.
	if self, err := h.store.StudentByProfileOwner(userID); err == nil {
		editor.AddCollaborator(self.ID)
	}
	for _, raw := range c.PostFormArray("collaborators") {
		studentID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid collaborator id", Message: raw})
			return
		}
		editor.AddCollaborator(studentID)
	}

	saved, err := editor.Save()
	if err != nil {
		h.saveError(c, err)
		return
	}

	h.realtimeClient.PublishProjectEvent(saved.ID, "project_submitted",
		supabase.ProjectSubmittedPayload(saved.ID, saved.Title))

	c.JSON(http.StatusOK, h.projectResponse(saved, true))
}

// UpdateProject applies staged edits to an existing project. Owners reach it
// from the edit form; staff reach it from the admin form and may set the
// status directly. For everyone else an Approved project demotes to
// PendingEdit on save.
func (h *ProjectsHandler) UpdateProject(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	editor, err := drafts.Load(h.store, h.storageClient, projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found", Message: err.Error()})
		return
	}

	staff := middleware.IsStaff(c)
	if !staff && !containsString(editor.Draft().Owners, userID) {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "not an owner of this project"})
		return
	}

	editor.SetFields(
		c.PostForm("title"),
		c.PostForm("background"),
		c.PostForm("technology"),
		c.PostForm("benefits"),
		c.PostForm("application"),
		c.PostForm("year"),
	)
	if err := editor.SetTags(c.PostFormArray("tags")); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	form := c.Request.MultipartForm
	if covers := form.File["cover"]; len(covers) > 0 {
		data, err := readFormFile(covers[0])
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read cover image", Message: err.Error()})
			return
		}
		editor.ReplaceCover(covers[0].Filename, data)
	}
	for _, header := range form.File["images"] {
		data, err := readFormFile(header)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read image", Message: err.Error()})
			return
		}
		editor.AttachImage(header.Filename, data)
	}
	for _, path := range c.PostFormArray("remove_images") {
		editor.RemoveImage(path)
	}

	if raws := c.PostFormArray("collaborators"); len(raws) > 0 || c.PostForm("collaborators_set") == "true" {
		ids := make([]uuid.UUID, 0, len(raws))
		for _, raw := range raws {
			studentID, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid collaborator id", Message: raw})
				return
			}
			ids = append(ids, studentID)
		}
		editor.SetCollaborators(ids)
	}

	if staff {
		if status := c.PostForm("status"); status != "" {
			editor.SetStatus(status)
		}
		if comments := c.PostForm("mod_comments"); comments != "" {
			editor.SetModComments(comments)
		}
	}

	saved, err := editor.Save()
	if err != nil {
		h.saveError(c, err)
		return
	}

	h.realtimeClient.PublishProjectEvent(saved.ID, "project_updated",
		supabase.StatusChangedPayload(saved.ID, saved.Status))

	c.JSON(http.StatusOK, h.projectResponse(saved, true))
}

// GetProject returns one project. Guests and plain students only see
// Approved projects; owners and staff see everything.
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.store.GetProject(projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found", Message: err.Error()})
		return
	}

	if project.Status != models.StatusApproved {
		userID, _ := currentUser(c)
		if !middleware.IsStaff(c) && !containsString(project.Owners, userID) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return
		}
	}

	c.JSON(http.StatusOK, h.projectResponse(project, middleware.IsStaff(c)))
}

// Approve moves a project (Pending or PendingEdit) straight to Approved.
func (h *ProjectsHandler) Approve(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.store.Projects.Update(projectID, map[string]interface{}{
		"status":        models.StatusApproved,
		"reject_reason": "",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to approve project", Message: err.Error()})
		return
	}

	h.realtimeClient.PublishProjectEvent(projectID, "status_changed",
		supabase.StatusChangedPayload(projectID, project.Status))

	c.JSON(http.StatusOK, h.projectResponse(project, true))
}

// Reject requires a reason and records it alongside the status.
func (h *ProjectsHandler) Reject(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	var req models.RejectProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Reason == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "rejection reason is required"})
		return
	}

	project, err := h.store.Projects.Update(projectID, map[string]interface{}{
		"status":        models.StatusRejected,
		"reject_reason": req.Reason,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to reject project", Message: err.Error()})
		return
	}

	h.realtimeClient.PublishProjectEvent(projectID, "status_changed",
		supabase.StatusChangedPayload(projectID, project.Status))

	c.JSON(http.StatusOK, h.projectResponse(project, true))
}

// UpdateComments saves the moderator comment edited inline in the projects
// table.
func (h *ProjectsHandler) UpdateComments(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	var req models.ModCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	project, err := h.store.Projects.Update(projectID, map[string]interface{}{
		"mod_comments": req.Comment,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update comments", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.projectResponse(project, true))
}

// Delete removes a project, its join rows, and its stored images.
func (h *ProjectsHandler) Delete(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	joins, err := h.store.Collaborators(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load collaborators", Message: err.Error()})
		return
	}
	for _, join := range joins {
		if err := h.store.RemoveCollaborator(join.ID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to remove collaborator", Message: err.Error()})
			return
		}
	}

	if err := h.storageClient.RemoveProjectFiles(projectID); err != nil {
		// Storage cleanup is best-effort; the row deletion still proceeds.
		log.Printf("failed to remove files for project %s: %v", projectID, err)
	}

	if err := h.store.Projects.Delete(projectID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete project", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}

// ListCollaborators backs the "View Students" modal in the projects table.
func (h *ProjectsHandler) ListCollaborators(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	joins, err := h.store.Collaborators(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load collaborators", Message: err.Error()})
		return
	}

	students := make([]models.StudentSummary, 0, len(joins))
	for _, join := range joins {
		student, err := h.store.GetStudent(join.StudentID)
		if err != nil {
			continue
		}
		students = append(students, models.StudentSummary{
			ID:    student.ID.String(),
			Name:  student.FullName(),
			Email: student.Email,
		})
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

func (h *ProjectsHandler) saveError(c *gin.Context, err error) {
	var validation *drafts.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation failed", Message: validation.Error()})
		return
	}
	var partial *drafts.PartialCommitError
	if errors.As(err, &partial) {
		log.Printf("project save failed at step %q: %v", partial.Step, partial.Err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save project",
			Message: partial.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save project", Message: err.Error()})
}

func (h *ProjectsHandler) projectResponse(project models.Project, includeModeration bool) models.ProjectResponse {
	resp := models.ProjectResponse{
		ID:          project.ID.String(),
		Title:       project.Title,
		Background:  project.Background,
		Technology:  project.Technology,
		Benefits:    project.Benefits,
		Application: project.Application,
		Tags:        project.Tags,
		Year:        project.Year,
		Status:      project.Status,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	if project.CoverImagePath != "" {
		resp.CoverImageURL = h.storageClient.GetPublicURL(project.CoverImagePath)
	}
	for _, path := range project.OtherImagePaths {
		resp.OtherImageURLs = append(resp.OtherImageURLs, h.storageClient.GetPublicURL(path))
	}
	if includeModeration {
		resp.ModComments = project.ModComments
		resp.RejectReason = project.RejectReason
	}
	return resp
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
