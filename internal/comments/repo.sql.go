package comments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Repository provides PostgreSQL backed persistence for comments.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const commentColumns = `id, content, author_id, post_id, created_at, updated_at`

func scanComment(row pgx.Row) (*Comment, error) {
	var comment Comment
	err := row.Scan(&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// Create inserts a new comment.
func (r *Repository) Create(ctx context.Context, postID, authorID int64, content string) (*Comment, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO comments (content, author_id, post_id)
		 VALUES ($1, $2, $3)
		 RETURNING `+commentColumns,
		content, authorID, postID)
	return scanComment(row)
}

// FindByID fetches a comment by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Comment, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	return scanComment(row)
}

// AuthorOf returns the owning user id of a comment.
func (r *Repository) AuthorOf(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM comments WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.ErrNotFound
		}
		return 0, err
	}
	return authorID, nil
}

// PostAuthorName returns the display name of the post's author, or
// shared.ErrNotFound when the post does not exist.
func (r *Repository) PostAuthorName(ctx context.Context, postID int64) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx,
		`SELECT u.name FROM posts p JOIN users u ON u.id = p.author_id WHERE p.id = $1`,
		postID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return name, nil
}

// ListForPost returns a post's comments, oldest first.
func (r *Repository) ListForPost(ctx context.Context, postID int64) ([]Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Comment
	for rows.Next() {
		var comment Comment
		if err := rows.Scan(&comment.ID, &comment.Content, &comment.AuthorID, &comment.PostID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Update replaces a comment's content and returns the stored record.
func (r *Repository) Update(ctx context.Context, id int64, content string) (*Comment, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE comments SET content = $1, updated_at = now() WHERE id = $2 RETURNING `+commentColumns,
		content, id)
	return scanComment(row)
}

// Delete removes a comment.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
