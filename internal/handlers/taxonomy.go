package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/models"
)

// TaxonomyHandler manages the flat lookup tables: degrees, tags, and
// contact reasons. Reads are public (the submission and interest forms need
// them); writes are staff only.
type TaxonomyHandler struct {
	store *datastore.Store
}

func NewTaxonomyHandler(store *datastore.Store) *TaxonomyHandler {
	return &TaxonomyHandler{store: store}
}

func (h *TaxonomyHandler) ListDegrees(c *gin.Context) {
	degrees, err := h.store.Degrees.ListAll(datastore.Filter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load degrees", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"degrees": degrees})
}

func (h *TaxonomyHandler) CreateDegree(c *gin.Context) {
	var req models.CreateDegreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "degree name is required"})
		return
	}

	degree, err := h.store.Degrees.Create(models.Degree{Name: req.Name, Code: strings.TrimSpace(req.Code)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create degree", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, degree)
}

func (h *TaxonomyHandler) DeleteDegree(c *gin.Context) {
	degreeID, ok := pathUUID(c, "degree_id")
	if !ok {
		return
	}
	if err := h.store.Degrees.Delete(degreeID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete degree", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "degree deleted successfully"})
}

func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.store.Tags.ListAll(datastore.Filter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load tags", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "tag name is required"})
		return
	}

	tag, err := h.store.Tags.Create(models.Tag{Name: req.Name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create tag", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	tagID, ok := pathUUID(c, "tag_id")
	if !ok {
		return
	}
	if err := h.store.Tags.Delete(tagID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete tag", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted successfully"})
}

func (h *TaxonomyHandler) ListReasons(c *gin.Context) {
	reasons, err := h.store.Reasons.ListAll(datastore.Filter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load contact reasons", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact_reasons": reasons})
}

func (h *TaxonomyHandler) CreateReason(c *gin.Context) {
	var req models.CreateReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "reason name is required"})
		return
	}

	reason, err := h.store.Reasons.Create(models.ContactReason{Name: req.Name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create contact reason", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, reason)
}

func (h *TaxonomyHandler) DeleteReason(c *gin.Context) {
	reasonID, ok := pathUUID(c, "reason_id")
	if !ok {
		return
	}
	if err := h.store.Reasons.Delete(reasonID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete contact reason", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact reason deleted successfully"})
}
