package catalog

import "errors"

// Sentinel errors returned by catalog operations. Callers match them
// with errors.Is; the wrapping message carries the offending value.
var (
	ErrNotFound      = errors.New("book not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidField  = errors.New("invalid search field")
	ErrInvalidYear   = errors.New("invalid year")
	ErrEmptyTitle    = errors.New("title is required")
	ErrEmptyAuthor   = errors.New("author is required")
)
