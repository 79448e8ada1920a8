package datastore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Op is a field predicate supported by the data service.
type Op string

const (
	OpEq         Op = "eq"
	OpContains   Op = "contains"
	OpBeginsWith Op = "beginsWith"
	// OpHas tests membership in an array column.
	OpHas Op = "has"
)

type Cond struct {
	Field string
	Op    Op
	Value string
}

// Filter is a conjunction of conditions, each of which is either a single
// predicate or a disjunction of predicates. That shape covers every query the
// app issues (e.g. status eq X AND (name contains q OR email contains q)).
type Filter struct {
	groups [][]Cond
}

func On(field string, op Op, value string) Cond {
	return Cond{Field: field, Op: op, Value: value}
}

// Where starts a filter with a single predicate.
func Where(field string, op Op, value string) Filter {
	return Filter{groups: [][]Cond{{On(field, op, value)}}}
}

// And adds another required predicate.
func (f Filter) And(field string, op Op, value string) Filter {
	f.groups = append(f.groups, []Cond{On(field, op, value)})
	return f
}

// AndAny adds a disjunction: at least one of the given predicates must hold.
func (f Filter) AndAny(conds ...Cond) Filter {
	if len(conds) == 0 {
		return f
	}
	f.groups = append(f.groups, conds)
	return f
}

func (f Filter) IsZero() bool {
	return len(f.groups) == 0
}

// orExpr renders a condition in PostgREST's or= filter syntax.
func orExpr(c Cond) string {
	switch c.Op {
	case OpContains:
		return fmt.Sprintf("%s.ilike.*%s*", c.Field, c.Value)
	case OpBeginsWith:
		return fmt.Sprintf("%s.ilike.%s*", c.Field, c.Value)
	case OpHas:
		return fmt.Sprintf("%s.cs.{%s}", c.Field, c.Value)
	default:
		return fmt.Sprintf("%s.eq.%s", c.Field, c.Value)
	}
}

func orGroupExpr(conds []Cond) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = orExpr(c)
	}
	return strings.Join(parts, ",")
}

// Query is one list request against a collection.
type Query struct {
	Filter Filter
	Cursor string
	Limit  int
}

// Page is the result of a list request. NextCursor is empty when the
// collection is exhausted.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// cursorToken is the decoded form of the opaque continuation cursor: the sort
// key of the last row of the previous page (created_at desc, id desc).
type cursorToken struct {
	CreatedAt time.Time `json:"t"`
	ID        uuid.UUID `json:"id"`
}

func encodeCursor(createdAt time.Time, id uuid.UUID) string {
	raw, _ := json.Marshal(cursorToken{CreatedAt: createdAt, ID: id})
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(cursor string) (cursorToken, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return cursorToken{}, fmt.Errorf("malformed cursor: %w", err)
	}
	var tok cursorToken
	if err := json.Unmarshal(raw, &tok); err != nil {
		return cursorToken{}, fmt.Errorf("malformed cursor: %w", err)
	}
	return tok, nil
}
