package shared

// Pagination holds the page window requested by a listing call.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination normalizes page/limit query values. Zero or negative inputs
// fall back to the defaults (page 1, 10 per page).
func NewPagination(page, limit int) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the row offset of the window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
