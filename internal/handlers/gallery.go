package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/models"
	"innovation-gallery-backend/internal/supabase"
)

const galleryPageLimit = 15

// GalleryHandler serves the public gallery: Approved projects only, no auth
// required. Listing is cursor-paged so the client can keep scrolling.
type GalleryHandler struct {
	store         *datastore.Store
	storageClient *supabase.StorageClient
}

func NewGalleryHandler(store *datastore.Store, storageClient *supabase.StorageClient) *GalleryHandler {
	return &GalleryHandler{store: store, storageClient: storageClient}
}

// List returns one page of Approved projects. Optional query params: q
// (matched against title), tag, year, cursor, limit.
func (h *GalleryHandler) List(c *gin.Context) {
	filter := datastore.Where("status", datastore.OpEq, models.StatusApproved)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		filter = filter.And("title", datastore.OpContains, q)
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		filter = filter.And("tags", datastore.OpHas, tag)
	}
	if year := strings.TrimSpace(c.Query("year")); year != "" {
		filter = filter.And("year", datastore.OpEq, year)
	}

	limit := galleryPageLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	page, err := h.store.Projects.List(datastore.Query{
		Filter: filter,
		Cursor: c.Query("cursor"),
		Limit:  limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load gallery",
			Message: err.Error(),
		})
		return
	}

	items := make([]models.ProjectResponse, 0, len(page.Items))
	for _, project := range page.Items {
		item := models.ProjectResponse{
			ID:         project.ID.String(),
			Title:      project.Title,
			Background: project.Background,
			Technology: project.Technology,
			Benefits:   project.Benefits,
			Tags:       project.Tags,
			Year:       project.Year,
			Status:     project.Status,
			CreatedAt:  project.CreatedAt,
			UpdatedAt:  project.UpdatedAt,
		}
		if project.CoverImagePath != "" {
			item.CoverImageURL = h.storageClient.GetPublicURL(project.CoverImagePath)
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"next_cursor": page.NextCursor,
		"has_more":    page.NextCursor != "",
	})
}

// Get returns one Approved project with its images and collaborator names.
func (h *GalleryHandler) Get(c *gin.Context) {
	projectID, ok := pathUUID(c, "project_id")
	if !ok {
		return
	}

	project, err := h.store.GetProject(projectID)
	if err != nil || project.Status != models.StatusApproved {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

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

	joins, err := h.store.Collaborators(projectID)
	if err == nil {
		for _, join := range joins {
			student, err := h.store.GetStudent(join.StudentID)
			if err != nil {
				continue
			}
			resp.Collaborators = append(resp.Collaborators, models.StudentSummary{
				ID:   student.ID.String(),
				Name: student.FullName(),
			})
		}
	}

	c.JSON(http.StatusOK, resp)
}
