package posts

import (
	"time"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Post is an authored article. AuthorID is set once at creation and never
// reassigned; ownership transfers only by delete and re-create.
type Post struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Tags            []string  `json:"tags"`
	AuthorID        int64     `json:"authorId"`
	PublicationDate time.Time `json:"publicationDate"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreatePostParams carries the fields of a new post.
type CreatePostParams struct {
	Title    string
	Content  string
	Tags     []string
	AuthorID int64
}

// UpdatePostParams carries a partial update; nil fields stay untouched.
type UpdatePostParams struct {
	Title   *string
	Content *string
	Tags    []string
}

// ListFilter narrows a post listing.
type ListFilter struct {
	Title    string
	Tags     []string
	AuthorID int64
	SortBy   string
	SortDesc bool
	Fields   []string
	Page     shared.Pagination
}

// ListResult is the page returned by a listing call.
type ListResult struct {
	NumberOfRecords int              `json:"numberOfRecords"`
	Posts           []map[string]any `json:"posts"`
	Page            int              `json:"page"`
	Limit           int              `json:"limit"`
}
