package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Limit returns the row limit for the query, falling back to defaultSize when
// the page size is not positive.
func (p PaginationParams) Limit(defaultSize int) int {
	if p.PageSize < 1 {
		return defaultSize
	}
	return p.PageSize
}
