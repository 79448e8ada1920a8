package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/middleware"
	"innovation-gallery-backend/internal/models"
	"innovation-gallery-backend/internal/services"
)

type StudentsHandler struct {
	store    *datastore.Store
	importer *services.Importer
}

func NewStudentsHandler(store *datastore.Store, importer *services.Importer) *StudentsHandler {
	return &StudentsHandler{store: store, importer: importer}
}

// Me returns the student record owned by the authenticated user, creating a
// stub on first login so the profile screen always has something to edit.
func (h *StudentsHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	student, err := h.store.StudentByProfileOwner(userID)
	if err != nil {
		email, _ := c.Get(middleware.EmailKey)
		emailStr, _ := email.(string)
		student, err = h.store.Students.Create(models.Student{
			Email:        emailStr,
			ProfileOwner: userID,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create student profile", Message: err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, student)
}

// Get returns one student record. Staff only; students read themselves via Me.
func (h *StudentsHandler) Get(c *gin.Context) {
	studentID, ok := pathUUID(c, "student_id")
	if !ok {
		return
	}

	student, err := h.store.GetStudent(studentID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "student not found", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, student)
}

// Update edits a student record. A student may edit their own phone and
// degree; staff may edit every field of any record.
func (h *StudentsHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	studentID, ok := pathUUID(c, "student_id")
	if !ok {
		return
	}

	student, err := h.store.GetStudent(studentID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "student not found", Message: err.Error()})
		return
	}

	staff := middleware.IsStaff(c)
	if !staff && student.ProfileOwner != userID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "not your profile"})
		return
	}

	var req models.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	patch := map[string]interface{}{}
	if req.Phone != "" {
		patch["phone"] = req.Phone
	}
	if req.Degree != "" {
		patch["degree"] = req.Degree
	}
	if staff {
		if req.FirstName != "" {
			patch["first_name"] = req.FirstName
		}
		if req.LastName != "" {
			patch["last_name"] = req.LastName
		}
		if req.Email != "" {
			patch["email"] = req.Email
		}
	} else if req.FirstName != "" || req.LastName != "" || req.Email != "" {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "only phone and degree can be changed on your own profile"})
		return
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "nothing to update"})
		return
	}

	updated, err := h.store.Students.Update(studentID, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update student", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Create adds a student record directly. Staff only.
func (h *StudentsHandler) Create(c *gin.Context) {
	var req models.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "first name and email are required"})
		return
	}

	student, err := h.store.Students.Create(models.Student{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		Degree:    req.Degree,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create student", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, student)
}

// Delete removes a student record. Staff only.
func (h *StudentsHandler) Delete(c *gin.Context) {
	studentID, ok := pathUUID(c, "student_id")
	if !ok {
		return
	}
	if err := h.store.Students.Delete(studentID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete student", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "student deleted successfully"})
}

// ImportCSV bulk-loads historical projects and their students from a CSV
// export. Staff only.
func (h *StudentsHandler) ImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "csv file is required", Message: err.Error()})
		return
	}
	defer file.Close()

	result, err := h.importer.ImportCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "import failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
