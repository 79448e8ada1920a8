package options

import (
	"sort"
	"strings"

	"innovation-gallery-backend/internal/datastore"
)

const fetchLimit = 25

// TagFetcher searches tag names, labels them capitalized, and orders
// prefix matches before substring matches.
func TagFetcher(store *datastore.Store) FetchFunc {
	return func(term string) ([]Option, error) {
		query := strings.ToLower(term)
		page, err := store.Tags.List(datastore.Query{
			Filter: datastore.Where("name", datastore.OpContains, query),
			Limit:  fetchLimit,
		})
		if err != nil {
			return nil, err
		}

		opts := make([]Option, len(page.Items))
		for i, tag := range page.Items {
			opts[i] = Capitalized(tag.Name)
		}
		sortPrefixFirst(opts, query)
		return opts, nil
	}
}

// StudentFetcher searches students by name or email; options carry the
// student id as value and the email as label, matching what the
// collaborator picker stores.
func StudentFetcher(store *datastore.Store) FetchFunc {
	return func(term string) ([]Option, error) {
		query := strings.ToLower(term)
		page, err := store.Students.List(datastore.Query{
			Filter: datastore.Filter{}.AndAny(
				datastore.On("first_name", datastore.OpContains, query),
				datastore.On("last_name", datastore.OpContains, query),
				datastore.On("email", datastore.OpContains, query),
			),
			Limit: fetchLimit,
		})
		if err != nil {
			return nil, err
		}

		opts := make([]Option, len(page.Items))
		for i, student := range page.Items {
			label := student.Email
			if label == "" {
				label = student.FullName()
			}
			opts[i] = Option{Label: label, Value: student.ID.String()}
		}
		return opts, nil
	}
}

// DegreeFetcher searches degree names for the profile degree picker.
func DegreeFetcher(store *datastore.Store) FetchFunc {
	return func(term string) ([]Option, error) {
		query := strings.ToLower(term)
		page, err := store.Degrees.List(datastore.Query{
			Filter: datastore.Where("name", datastore.OpContains, query),
			Limit:  fetchLimit,
		})
		if err != nil {
			return nil, err
		}

		opts := make([]Option, len(page.Items))
		for i, degree := range page.Items {
			opts[i] = Capitalized(degree.Name)
		}
		sortPrefixFirst(opts, query)
		return opts, nil
	}
}

func sortPrefixFirst(opts []Option, query string) {
	sort.SliceStable(opts, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(opts[i].Value), query)
		pj := strings.HasPrefix(strings.ToLower(opts[j].Value), query)
		if pi != pj {
			return pi
		}
		return strings.ToLower(opts[i].Value) < strings.ToLower(opts[j].Value)
	})
}
