package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/models"
	"innovation-gallery-backend/internal/supabase"
)

// InterestHandler takes investor interest submissions from the public
// gallery and lets staff triage them through the status categories.
type InterestHandler struct {
	store          *datastore.Store
	realtimeClient *supabase.RealtimeClient
}

func NewInterestHandler(store *datastore.Store, realtimeClient *supabase.RealtimeClient) *InterestHandler {
	return &InterestHandler{store: store, realtimeClient: realtimeClient}
}

// Create records a new interest submission. No auth: investors are guests.
func (h *InterestHandler) Create(c *gin.Context) {
	var req models.CreateInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	req.InvestorName = strings.TrimSpace(req.InvestorName)
	req.InvestorEmail = strings.TrimSpace(req.InvestorEmail)
	if req.InvestorName == "" || req.InvestorEmail == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "name and email are required"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id", Message: req.ProjectID})
		return
	}
	project, err := h.store.GetProject(projectID)
	if err != nil || project.Status != models.StatusApproved {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
		return
	}

	interest, err := h.store.Interests.Create(models.InvestorInterest{
		ProjectID:       projectID,
		InvestorName:    req.InvestorName,
		InvestorEmail:   req.InvestorEmail,
		InvestorPhone:   req.InvestorPhone,
		InvestorCompany: req.InvestorCompany,
		InvestorReason:  req.InvestorReason,
		Message:         req.Message,
		StatusCategory:  models.CategoryNew,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to submit interest", Message: err.Error()})
		return
	}

	h.realtimeClient.PublishProjectEvent(projectID, "interest_received",
		supabase.InterestReceivedPayload(interest.ID, projectID))

	c.JSON(http.StatusOK, gin.H{
		"id":      interest.ID.String(),
		"message": "interest submitted successfully",
	})
}

// Get returns the full submission for the triage detail view.
func (h *InterestHandler) Get(c *gin.Context) {
	interestID, ok := pathUUID(c, "interest_id")
	if !ok {
		return
	}

	interest, err := h.store.Interests.Get(interestID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "interest not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, interest)
}

// Triage moves a submission between status categories and updates the
// freeform status and moderator comments.
func (h *InterestHandler) Triage(c *gin.Context) {
	interestID, ok := pathUUID(c, "interest_id")
	if !ok {
		return
	}

	var req models.TriageInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	switch req.StatusCategory {
	case models.CategoryNew, models.CategoryPending, models.CategoryClosed, models.CategoryRejected:
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status category", Message: req.StatusCategory})
		return
	}

	patch := map[string]interface{}{
		"status_category": req.StatusCategory,
		"status":          req.Status,
	}
	if req.ModComments != "" {
		patch["mod_comments"] = req.ModComments
	}

	interest, err := h.store.Interests.Update(interestID, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update interest", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, interest)
}

// Delete removes a submission outright.
func (h *InterestHandler) Delete(c *gin.Context) {
	interestID, ok := pathUUID(c, "interest_id")
	if !ok {
		return
	}

	if err := h.store.Interests.Delete(interestID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete interest", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "interest deleted successfully"})
}
