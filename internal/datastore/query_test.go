package datastore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	cursor := encodeCursor(at, id)
	require.NotEmpty(t, cursor)
	// Opaque to clients: URL-safe, no padding.
	assert.NotContains(t, cursor, "=")
	assert.NotContains(t, cursor, "+")

	tok, err := decodeCursor(cursor)
	require.NoError(t, err)
	assert.True(t, tok.CreatedAt.Equal(at))
	assert.Equal(t, id, tok.ID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := decodeCursor("not!base64")
	assert.Error(t, err)

	_, err = decodeCursor("bm90LWpzb24")
	assert.Error(t, err)
}

func TestOrExpr(t *testing.T) {
	assert.Equal(t, "status.eq.Approved", orExpr(On("status", OpEq, "Approved")))
	assert.Equal(t, "title.ilike.*solar*", orExpr(On("title", OpContains, "solar")))
	assert.Equal(t, "name.ilike.sol*", orExpr(On("name", OpBeginsWith, "sol")))
	assert.Equal(t, "tags.cs.{Energy}", orExpr(On("tags", OpHas, "Energy")))
}

func TestOrGroupExpr(t *testing.T) {
	expr := orGroupExpr([]Cond{
		On("first_name", OpContains, "jo"),
		On("email", OpContains, "jo"),
	})
	assert.Equal(t, "first_name.ilike.*jo*,email.ilike.*jo*", expr)
}

func TestFilterBuilding(t *testing.T) {
	f := Where("status", OpEq, "Pending").
		And("title", OpContains, "solar").
		AndAny(On("a", OpEq, "1"), On("b", OpEq, "2"))

	require.Len(t, f.groups, 3)
	assert.Len(t, f.groups[0], 1)
	assert.Len(t, f.groups[2], 2)
	assert.False(t, f.IsZero())
	assert.True(t, Filter{}.IsZero())

	// AndAny with nothing is a no-op.
	assert.Len(t, f.AndAny().groups, 3)
}
