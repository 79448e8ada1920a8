package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/models"
	"innovation-gallery-backend/internal/options"
)

// OptionsHandler serves the searchable select boxes: tags, collaborator
// students, and degrees. Resolvers are keyed per user and kind so one
// caller's in-flight search is never superseded by another caller's;
// requests resolve synchronously, and a response superseded by a newer query
// from the same user is reported as a conflict rather than stale data.
type OptionsHandler struct {
	store     *datastore.Store
	resolvers *options.Registry
}

func NewOptionsHandler(store *datastore.Store) *OptionsHandler {
	return &OptionsHandler{store: store, resolvers: options.NewRegistry()}
}

func (h *OptionsHandler) Tags(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	h.serve(c, h.resolvers.For(userID+"|tags", func() *options.Resolver {
		return options.NewResolver(options.TagFetcher(h.store), nil)
	}))
}

func (h *OptionsHandler) Students(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	h.serve(c, h.resolvers.For(userID+"|students", func() *options.Resolver {
		return options.NewResolver(options.StudentFetcher(h.store), nil, options.WithMinLength(2))
	}))
}

func (h *OptionsHandler) Degrees(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	h.serve(c, h.resolvers.For(userID+"|degrees", func() *options.Resolver {
		return options.NewResolver(options.DegreeFetcher(h.store), nil)
	}))
}

func (h *OptionsHandler) serve(c *gin.Context, resolver *options.Resolver) {
	opts, err := resolver.Resolve(c.Query("q"))
	if err != nil {
		if errors.Is(err, options.ErrSuperseded) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "superseded by a newer query"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load options", Message: err.Error()})
		return
	}
	if opts == nil {
		opts = []options.Option{}
	}
	c.JSON(http.StatusOK, gin.H{"options": opts})
}
