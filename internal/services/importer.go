package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"innovation-gallery-backend/internal/datastore"
	"innovation-gallery-backend/internal/models"
)

// Importer loads the historical project archive from the admin CSV upload.
// Each row creates a Pending project, a student record per listed name, and
// the join rows between them.
type Importer struct {
	store *datastore.Store
}

func NewImporter(store *datastore.Store) *Importer {
	return &Importer{store: store}
}

type ImportResult struct {
	ProjectsCreated int      `json:"projects_created"`
	StudentsCreated int      `json:"students_created"`
	SkippedRows     int      `json:"skipped_rows"`
	Errors          []string `json:"errors,omitempty"`
}

// Expected CSV header columns. Rows missing a project title are skipped.
var csvColumns = []string{
	"Project Title",
	"Background of Project",
	"Technology Description",
	"Project Benefits",
	"Project Tags",
	"Year Completed",
	"Students Involved",
}

func (im *Importer) ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	if _, ok := index["Project Title"]; !ok {
		return nil, fmt.Errorf("csv is missing the %q column", "Project Title")
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read csv row: %w", err)
		}

		title := field(row, "Project Title")
		if title == "" {
			result.SkippedRows++
			continue
		}

		tags := splitList(field(row, "Project Tags"))
		if len(tags) > models.MaxProjectTags {
			tags = tags[:models.MaxProjectTags]
		}

		project, err := im.store.Projects.Create(models.Project{
			Title:      title,
			Background: field(row, "Background of Project"),
			Technology: field(row, "Technology Description"),
			Benefits:   field(row, "Project Benefits"),
			Tags:       tags,
			Year:       field(row, "Year Completed"),
			Status:     models.StatusPending,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("project %q: %v", title, err))
			continue
		}
		result.ProjectsCreated++

		for _, name := range splitList(strings.ReplaceAll(field(row, "Students Involved"), "\n", ", ")) {
			parts := strings.SplitN(name, " ", 2)
			firstName := parts[0]
			lastName := ""
			if len(parts) > 1 {
				lastName = parts[1]
			}

			student, err := im.store.Students.Create(models.Student{
				FirstName: firstName,
				LastName:  lastName,
				Email:     placeholderEmail(name),
			})
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("student %q: %v", name, err))
				continue
			}
			result.StudentsCreated++

			if _, err := im.store.AddCollaborator(project.ID, student.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("link %q to %q: %v", name, title, err))
			}
		}
	}

	return result, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Imported students have no auth identity yet; they get a placeholder email
// until they sign up and claim the profile.
func placeholderEmail(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@example.com"
}
