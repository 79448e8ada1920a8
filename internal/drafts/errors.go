package drafts

import (
	"errors"
	"fmt"
)

// ErrTagLimit is returned when adding a tag past the cap; the tag set is
// left unchanged so the form can warn instead of failing.
var ErrTagLimit = errors.New("a project can have at most 5 tags")

// ValidationError is a pre-flight failure: no remote calls have been made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// PartialCommitError reports a save that failed after earlier steps already
// ran. Completed steps are not rolled back; Step names the one that failed so
// the caller can decide whether to retry the whole save.
type PartialCommitError struct {
	Step string
	Err  error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("save failed at step %q: %v", e.Step, e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
