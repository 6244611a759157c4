package store

import (
	"fmt"
	"strings"
)

// SortOrder describes the column and direction used to order a listing.
type SortOrder struct {
	Field      string
	Descending bool
}

// Set of document fields that listings may be sorted by.
var sortableFields = map[string]struct{}{
	"id":        {},
	"title":     {},
	"author":    {},
	"type":      {},
	"createdAt": {},
}

// ParseSort parses a "field,direction" sort expression into a SortOrder.
// The expression must contain exactly one comma, the field must be a
// sortable document field and the direction must be either "asc" or
// "desc" (case-insensitive). Malformed expressions are a client error
// and are never silently replaced with a default order.
func ParseSort(expression string) (SortOrder, error) {
	parts := strings.Split(expression, ",")
	if len(parts) != 2 {
		return SortOrder{}, fmt.Errorf(
			"parse sort %q: %w", expression, ErrInvalidSort,
		)
	}

	field := strings.TrimSpace(parts[0])
	if _, sortable := sortableFields[field]; !sortable {
		return SortOrder{}, fmt.Errorf(
			"parse sort: unknown field %q: %w", field, ErrInvalidSort,
		)
	}

	var descending bool
	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "asc":
	case "desc":
		descending = true
	default:
		return SortOrder{}, fmt.Errorf(
			"parse sort: unknown direction %q: %w", parts[1], ErrInvalidSort,
		)
	}

	return SortOrder{Field: field, Descending: descending}, nil
}
