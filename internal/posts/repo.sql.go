package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Repository provides PostgreSQL backed persistence for posts.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const postColumns = `id, title, content, tags, author_id, publication_date, updated_at`

func scanPost(row pgx.Row) (*Post, error) {
	var post Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Tags, &post.AuthorID, &post.PublicationDate, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post.
func (r *Repository) Create(ctx context.Context, params CreatePostParams) (*Post, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO posts (title, content, tags, author_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+postColumns,
		params.Title, params.Content, params.Tags, params.AuthorID)
	return scanPost(row)
}

// FindByID fetches a post by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Post, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	return scanPost(row)
}

// AuthorOf returns the owning user id of a post.
func (r *Repository) AuthorOf(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.ErrNotFound
		}
		return 0, err
	}
	return authorID, nil
}

// sortColumns whitelists the sortable fields; anything else falls back to
// publication date.
var sortColumns = map[string]string{
	"id":              "id",
	"title":           "title",
	"publicationDate": "publication_date",
	"updatedAt":       "updated_at",
}

// List returns posts matching the filter, newest first unless the filter says
// otherwise.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Post, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Title != "" {
		conds = append(conds, "title = "+arg(filter.Title))
	}
	if filter.AuthorID != 0 {
		conds = append(conds, "author_id = "+arg(filter.AuthorID))
	}
	if len(filter.Tags) > 0 {
		conds = append(conds, "tags && "+arg(filter.Tags))
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "publication_date"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", column, direction)
	query += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(filter.Page.Limit), arg(filter.Page.Offset()))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Tags, &post.AuthorID, &post.PublicationDate, &post.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies a partial update and returns the stored record.
func (r *Repository) Update(ctx context.Context, id int64, params UpdatePostParams) (*Post, error) {
	var (
		sets []string
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Title != nil {
		sets = append(sets, "title = "+arg(*params.Title))
	}
	if params.Content != nil {
		sets = append(sets, "content = "+arg(*params.Content))
	}
	if params.Tags != nil {
		sets = append(sets, "tags = "+arg(params.Tags))
	}
	sets = append(sets, "updated_at = now()")

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = %s RETURNING %s`,
		strings.Join(sets, ", "), arg(id), postColumns)
	return scanPost(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes a post together with its comments.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return tx.Commit(ctx)
}
