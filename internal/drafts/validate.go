package drafts

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"innovation-gallery-backend/internal/models"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripHTML reduces rich-text content to its visible text. A string like
// "<p><br></p>" strips to "".
func StripHTML(input string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(input)))
}

// Validate checks the draft before any remote mutation is issued.
func (e *Editor) Validate() error {
	if strings.TrimSpace(e.draft.Title) == "" {
		return &ValidationError{Field: "title", Reason: "project title is required"}
	}
	if StripHTML(e.draft.Background) == "" {
		return &ValidationError{Field: "background", Reason: "project background is required"}
	}
	if StripHTML(e.draft.Technology) == "" {
		return &ValidationError{Field: "technology", Reason: "technology description is required"}
	}
	if StripHTML(e.draft.Benefits) == "" {
		return &ValidationError{Field: "benefits", Reason: "project benefits are required"}
	}
	if strings.TrimSpace(e.draft.Year) == "" {
		return &ValidationError{Field: "year", Reason: "year of completion is required"}
	}
	if len(e.draft.Tags) == 0 {
		return &ValidationError{Field: "tags", Reason: "at least one industry tag is required"}
	}
	if len(e.draft.Tags) > models.MaxProjectTags {
		return &ValidationError{Field: "tags", Reason: "too many industry tags"}
	}
	if e.newCover == nil && e.draft.CoverImagePath == "" {
		return &ValidationError{Field: "cover", Reason: "cover image is required"}
	}
	return nil
}
