package api

import "errors"

// Request-level errors abort a search call; parse-level errors are contained
// to the offending clause.
var (
	ErrEmptyQuery              = errors.New("search query cannot be empty")
	ErrInvalidLimit            = errors.New("limit must be non-negative")
	ErrInvalidSortField        = errors.New("invalid sort field")
	ErrInvalidDateFormat       = errors.New("invalid date format")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)
