// Package filter implements the catalog search used by the dashboard and template pages.
package filter

import "strings"

// AllCategories is the category selector that bypasses the category predicate.
const AllCategories = "all"

// Searchable is implemented by records that can be searched and grouped.
type Searchable interface {
	SearchFields() []string
	CategoryKey() string
}

// Criteria holds a free-text query and a category selector.
type Criteria struct {
	Query    string `json:"q"`
	Category string `json:"category"`
}

// Apply returns the items matching both the query and the category, in their original order.
// The input slice is never modified.
func Apply[T Searchable](items []T, query, category string) []T {
	query = strings.ToLower(query)
	category = strings.ToLower(strings.TrimSpace(category))
	anyCategory := category == "" || category == AllCategories

	matches := make([]T, 0, len(items))

	for _, item := range items {
		if !anyCategory && strings.ToLower(item.CategoryKey()) != category {
			continue
		}

		if !matchesQuery(item, query) {
			continue
		}

		matches = append(matches, item)
	}

	return matches
}

// ApplyCriteria is Apply with the query and category taken from c.
func ApplyCriteria[T Searchable](items []T, c Criteria) []T {
	return Apply(items, c.Query, c.Category)
}

func matchesQuery(item Searchable, query string) bool {
	if query == "" {
		return true
	}

	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}
