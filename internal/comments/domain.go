package comments

import "time"

// Comment is a reply attached to a post. AuthorID is set once at creation
// and never reassigned.
type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorId"`
	PostID    int64     `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentWithNames decorates a freshly created comment with the display
// names of its author and the post's author.
type CommentWithNames struct {
	Comment
	CommentAuthor string `json:"commentAuthor"`
	PostAuthor    string `json:"postAuthor"`
}
