package store

import "errors"

var (
	// ErrNotFound is returned when a document lookup fails.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSort is returned when a sort expression cannot be
	// parsed or references a column that documents cannot be sorted by.
	ErrInvalidSort = errors.New("invalid sort expression")

	// ErrInvalidPage is returned for negative page numbers or
	// non-positive page sizes.
	ErrInvalidPage = errors.New("invalid pagination parameters")
)
