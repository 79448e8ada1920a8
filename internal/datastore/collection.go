package datastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

var ErrNotFound = errors.New("row not found")

const defaultLimit = 50

// Collection is a typed view over one PostgREST table. Pages are ordered by
// (created_at desc, id desc) and continued with opaque keyset cursors; the
// backend does not support offset paging.
type Collection[T any] struct {
	client *supa.Client
	table  string
	key    func(T) (time.Time, uuid.UUID)
}

func NewCollection[T any](client *supa.Client, table string, key func(T) (time.Time, uuid.UUID)) *Collection[T] {
	return &Collection[T]{client: client, table: table, key: key}
}

func (c *Collection[T]) Table() string {
	return c.table
}

// List returns one page of rows matching the query. One extra row is
// requested to decide whether a continuation cursor should be handed back.
func (c *Collection[T]) List(q Query) (Page[T], error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	fb := c.client.From(c.table).Select("*", "", false)

	var disjunctions []string
	for _, group := range q.Filter.groups {
		if len(group) == 1 {
			cond := group[0]
			switch cond.Op {
			case OpContains:
				fb = fb.Ilike(cond.Field, "%"+cond.Value+"%")
			case OpBeginsWith:
				fb = fb.Ilike(cond.Field, cond.Value+"%")
			case OpHas:
				fb = fb.Contains(cond.Field, []string{cond.Value})
			default:
				fb = fb.Eq(cond.Field, cond.Value)
			}
			continue
		}
		disjunctions = append(disjunctions, orGroupExpr(group))
	}

	if q.Cursor != "" {
		tok, err := decodeCursor(q.Cursor)
		if err != nil {
			return Page[T]{}, err
		}
		ts := tok.CreatedAt.UTC().Format(time.RFC3339Nano)
		disjunctions = append(disjunctions,
			fmt.Sprintf("created_at.lt.%s,and(created_at.eq.%s,id.lt.%s)", ts, ts, tok.ID))
	}

	// A request carries at most one or= parameter; issuing a second .Or call
	// overwrites the first. When both a disjunction group and the cursor
	// predicate (or several groups) are present, they are folded into a
	// single and(or(...),or(...)) expression.
	switch len(disjunctions) {
	case 0:
	case 1:
		fb = fb.Or(disjunctions[0], "")
	default:
		parts := make([]string, len(disjunctions))
		for i, d := range disjunctions {
			parts[i] = "or(" + d + ")"
		}
		fb = fb.Or("and("+strings.Join(parts, ",")+")", "")
	}

	fb = fb.Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Order("id", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit+1, "")

	var rows []T
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return Page[T]{}, fmt.Errorf("list %s: %w", c.table, err)
	}

	page := Page[T]{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		createdAt, id := c.key(page.Items[limit-1])
		page.NextCursor = encodeCursor(createdAt, id)
	}
	return page, nil
}

// ListAll walks every page matching the filter. Used for small unpaged
// reads such as a project's join rows.
func (c *Collection[T]) ListAll(filter Filter) ([]T, error) {
	var all []T
	cursor := ""
	for {
		page, err := c.List(Query{Filter: filter, Cursor: cursor, Limit: 200})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if page.NextCursor == "" {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

func (c *Collection[T]) Get(id uuid.UUID) (T, error) {
	var rows []T
	var zero T
	_, err := c.client.From(c.table).
		Select("*", "", false).
		Eq("id", id.String()).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", c.table, err)
	}
	if len(rows) == 0 {
		return zero, ErrNotFound
	}
	return rows[0], nil
}

func (c *Collection[T]) Create(value T) (T, error) {
	var rows []T
	var zero T
	payload, err := insertPayload(value)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", c.table, err)
	}
	_, err = c.client.From(c.table).
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", c.table, err)
	}
	if len(rows) == 0 {
		return zero, fmt.Errorf("create %s: no row returned", c.table)
	}
	return rows[0], nil
}

// Update applies a partial patch (column name -> new value) and returns the
// updated row as the backend normalized it.
func (c *Collection[T]) Update(id uuid.UUID, patch map[string]interface{}) (T, error) {
	var rows []T
	var zero T
	_, err := c.client.From(c.table).
		Update(patch, "representation", "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", c.table, err)
	}
	if len(rows) == 0 {
		return zero, ErrNotFound
	}
	return rows[0], nil
}

// insertPayload drops zero-valued id/timestamp columns so the database
// defaults (gen_random_uuid, now()) apply on insert.
func insertPayload(value interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	for _, col := range []string{"id", "created_at", "updated_at"} {
		if v, ok := payload[col].(string); ok {
			if v == uuid.Nil.String() || v == zeroTime {
				delete(payload, col)
			}
		}
	}
	return payload, nil
}

const zeroTime = "0001-01-01T00:00:00Z"

func (c *Collection[T]) Delete(id uuid.UUID) error {
	_, _, err := c.client.From(c.table).
		Delete("", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	return nil
}
