package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/listing"
	"innovation-gallery-backend/internal/models"
)

// Page sizes observed in the admin tables.
const (
	wideTableLimit   = 15 // projects, clients, students
	narrowTableLimit = 12 // degrees, tags, contact reasons
)

// TablesHandler drives the paged admin tables. Each authenticated staff user
// gets one paging session per table, so stepping back replays the cursors
// that session recorded on the way forward. Changing the view or search
// resets the session to page zero.
type TablesHandler struct {
	store    *datastore.Store
	projects *listing.Sessions[models.Project]
	clients  *listing.Sessions[models.InvestorInterest]
	students *listing.Sessions[models.Student]
	degrees  *listing.Sessions[models.Degree]
	tags     *listing.Sessions[models.Tag]
	reasons  *listing.Sessions[models.ContactReason]
}

func NewTablesHandler(store *datastore.Store) *TablesHandler {
	return &TablesHandler{
		store:    store,
		projects: listing.NewSessions[models.Project](),
		clients:  listing.NewSessions[models.InvestorInterest](),
		students: listing.NewSessions[models.Student](),
		degrees:  listing.NewSessions[models.Degree](),
		tags:     listing.NewSessions[models.Tag](),
		reasons:  listing.NewSessions[models.ContactReason](),
	}
}

// Projects pages the moderation table. view selects a status bucket
// (pending, approved, rejected, all); q searches titles.
func (h *TablesHandler) Projects(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	view := strings.ToLower(c.DefaultQuery("view", "pending"))
	q := strings.TrimSpace(c.Query("q"))

	filter := datastore.Filter{}
	switch view {
	case "pending":
		filter = filter.AndAny(
			datastore.On("status", datastore.OpEq, models.StatusPending),
			datastore.On("status", datastore.OpEq, models.StatusPendingEdit),
		)
	case "approved":
		filter = filter.And("status", datastore.OpEq, models.StatusApproved)
	case "rejected":
		filter = filter.And("status", datastore.OpEq, models.StatusRejected)
	case "all":
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown view", Message: view})
		return
	}
	if q != "" {
		filter = filter.And("title", datastore.OpContains, q)
	}

	source := func(cursor string, limit int) ([]models.Project, string, error) {
		page, err := h.store.Projects.List(datastore.Query{Filter: filter, Cursor: cursor, Limit: limit})
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextCursor, nil
	}

	servePage(c, h.projects, userID+"|projects", view+"|"+q, wideTableLimit, source,
		func(p models.Project) models.ProjectSummary {
			return models.ProjectSummary{
				ID:        p.ID.String(),
				Title:     p.Title,
				Status:    p.Status,
				Comments:  p.ModComments,
				UpdatedAt: p.UpdatedAt,
			}
		})
}

// Clients pages the investor interest table by status category (new,
// pending, closed, rejected, all); q searches name, company, and email.
func (h *TablesHandler) Clients(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	view := strings.ToLower(c.DefaultQuery("view", "new"))
	q := strings.TrimSpace(c.Query("q"))

	filter := datastore.Filter{}
	switch view {
	case "new":
		filter = filter.And("status_category", datastore.OpEq, models.CategoryNew)
	case "pending":
		filter = filter.And("status_category", datastore.OpEq, models.CategoryPending)
	case "closed":
		filter = filter.And("status_category", datastore.OpEq, models.CategoryClosed)
	case "rejected":
		filter = filter.And("status_category", datastore.OpEq, models.CategoryRejected)
	case "all":
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown view", Message: view})
		return
	}
	if q != "" {
		filter = filter.AndAny(
			datastore.On("investor_name", datastore.OpContains, q),
			datastore.On("investor_company", datastore.OpContains, q),
			datastore.On("investor_email", datastore.OpContains, q),
		)
	}

	source := func(cursor string, limit int) ([]models.InvestorInterest, string, error) {
		page, err := h.store.Interests.List(datastore.Query{Filter: filter, Cursor: cursor, Limit: limit})
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextCursor, nil
	}

	servePage(c, h.clients, userID+"|clients", view+"|"+q, wideTableLimit, source,
		func(i models.InvestorInterest) models.InterestSummary {
			return models.InterestSummary{
				ID:              i.ID.String(),
				InvestorName:    i.InvestorName,
				InvestorCompany: i.InvestorCompany,
				InvestorEmail:   i.InvestorEmail,
				StatusCategory:  i.StatusCategory,
				Status:          i.Status,
				CreatedAt:       i.CreatedAt,
			}
		})
}

// Students pages the student directory; q searches name and email.
func (h *TablesHandler) Students(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	q := strings.TrimSpace(c.Query("q"))
	filter := datastore.Filter{}
	if q != "" {
		filter = filter.AndAny(
			datastore.On("first_name", datastore.OpContains, q),
			datastore.On("last_name", datastore.OpContains, q),
			datastore.On("email", datastore.OpContains, q),
		)
	}

	source := func(cursor string, limit int) ([]models.Student, string, error) {
		page, err := h.store.Students.List(datastore.Query{Filter: filter, Cursor: cursor, Limit: limit})
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextCursor, nil
	}

	servePage(c, h.students, userID+"|students", q, wideTableLimit, source,
		func(s models.Student) models.StudentSummary {
			return models.StudentSummary{
				ID:    s.ID.String(),
				Name:  s.FullName(),
				Email: s.Email,
			}
		})
}

func (h *TablesHandler) Degrees(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	filter := datastore.Filter{}
	if q != "" {
		filter = filter.And("name", datastore.OpContains, q)
	}
	source := func(cursor string, limit int) ([]models.Degree, string, error) {
		page, err := h.store.Degrees.List(datastore.Query{Filter: filter, Cursor: cursor, Limit: limit})
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextCursor, nil
	}
	servePage(c, h.degrees, userID+"|degrees", q, narrowTableLimit, source,
		func(d models.Degree) models.Degree { return d })
}

func (h *TablesHandler) Tags(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	filter := datastore.Filter{}
	if q != "" {
		filter = filter.And("name", datastore.OpContains, q)
	}
	source := func(cursor string, limit int) ([]models.Tag, string, error) {
		page, err := h.store.Tags.List(datastore.Query{Filter: filter, Cursor: cursor, Limit: limit})
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextCursor, nil
	}
	servePage(c, h.tags, userID+"|tags", q, narrowTableLimit, source,
		func(t models.Tag) models.Tag { return t })
}

func (h *TablesHandler) Reasons(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	filter := datastore.Filter{}
	if q != "" {
		filter = filter.And("name", datastore.OpContains, q)
	}
	source := func(cursor string, limit int) ([]models.ContactReason, string, error) {
		page, err := h.store.Reasons.List(datastore.Query{Filter: filter, Cursor: cursor, Limit: limit})
		if err != nil {
			return nil, "", err
		}
		return page.Items, page.NextCursor, nil
	}
	servePage(c, h.reasons, userID+"|reasons", q, narrowTableLimit, source,
		func(r models.ContactReason) models.ContactReason { return r })
}

// servePage resolves the caller's paging session, applies the requested
// navigation (action=next|previous|page&page=N, default: redisplay), and
// renders the pager's current page. A fresh or reset session ignores the
// navigation action: it already shows page zero of the new filter.
func servePage[T any, R any](
	c *gin.Context,
	sessions *listing.Sessions[T],
	key, filterKey string,
	limit int,
	source listing.Source[T],
	render func(T) R,
) {
	pager, loaded, err := sessions.Resolve(key, filterKey, limit, source)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load page", Message: err.Error()})
		return
	}

	if !loaded {
		switch action := c.Query("action"); action {
		case "", "current":
		case "next":
			err = pager.Next()
		case "previous":
			err = pager.Previous()
		case "page":
			index, convErr := strconv.Atoi(c.Query("page"))
			if convErr != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid page number"})
				return
			}
			err = pager.LoadPage(index)
		default:
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown action", Message: action})
			return
		}
	}

	switch {
	case err == nil:
	case errors.Is(err, listing.ErrNoMorePages), errors.Is(err, listing.ErrFirstPage):
		// The pager refused to move; fall through and show where it stayed.
	case errors.Is(err, listing.ErrSuperseded):
		// A concurrent filter change won; the pager already shows its result.
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load page", Message: err.Error()})
		return
	}

	items := pager.Items()
	rendered := make([]R, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, render(item))
	}

	c.JSON(http.StatusOK, models.PageResponse{
		Items:   rendered,
		Page:    pager.Page(),
		HasMore: pager.HasMore(),
	})
}
