package datastore

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	supa "github.com/supabase-community/supabase-go"
	"innovation-gallery-backend/internal/models"
)

// captureServer stands in for PostgREST and records the query string of the
// last list request.
func captureServer(t *testing.T) (*httptest.Server, *url.Values) {
	t.Helper()
	captured := &url.Values{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func studentCollection(t *testing.T, baseURL string) *Collection[models.Student] {
	t.Helper()
	client, err := supa.NewClient(baseURL, "test-key", nil)
	require.NoError(t, err)
	return NewCollection(client, "students", func(s models.Student) (time.Time, uuid.UUID) {
		return s.CreatedAt, s.ID
	})
}

func TestListCarriesSearchGroupAndCursorTogether(t *testing.T) {
	server, captured := captureServer(t)
	coll := studentCollection(t, server.URL)

	cursor := encodeCursor(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), uuid.New())
	_, err := coll.List(Query{
		Filter: Filter{}.AndAny(
			On("first_name", OpContains, "jo"),
			On("last_name", OpContains, "jo"),
			On("email", OpContains, "jo"),
		),
		Cursor: cursor,
		Limit:  15,
	})
	require.NoError(t, err)

	// Both the search disjunction and the keyset predicate must survive into
	// the one or= parameter the backend accepts.
	expr := captured.Get("or")
	require.NotEmpty(t, expr)
	assert.Contains(t, expr, "first_name.ilike.*jo*")
	assert.Contains(t, expr, "email.ilike.*jo*")
	assert.Contains(t, expr, "created_at.lt.")
}

func TestListFoldsMultipleDisjunctionGroups(t *testing.T) {
	server, captured := captureServer(t)
	coll := studentCollection(t, server.URL)

	_, err := coll.List(Query{
		Filter: Filter{}.
			AndAny(On("first_name", OpContains, "jo"), On("email", OpContains, "jo")).
			AndAny(On("degree", OpEq, "BSc"), On("degree", OpEq, "MSc")),
		Limit: 15,
	})
	require.NoError(t, err)

	expr := captured.Get("or")
	require.NotEmpty(t, expr)
	assert.Contains(t, expr, "first_name.ilike.*jo*")
	assert.Contains(t, expr, "degree.eq.BSc")
}

func TestListSingleGroupStaysBare(t *testing.T) {
	server, captured := captureServer(t)
	coll := studentCollection(t, server.URL)

	_, err := coll.List(Query{
		Filter: Filter{}.AndAny(On("first_name", OpContains, "jo"), On("email", OpContains, "jo")),
		Limit:  15,
	})
	require.NoError(t, err)

	expr := captured.Get("or")
	require.NotEmpty(t, expr)
	assert.Contains(t, expr, "first_name.ilike.*jo*,email.ilike.*jo*")
	// A lone disjunction is not wrapped in the and(...) fold.
	assert.NotContains(t, expr, "and(or(")
}
