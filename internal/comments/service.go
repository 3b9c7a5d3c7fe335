package comments

import (
	"context"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// RepositoryPort defines data access methods for comments.
type RepositoryPort interface {
	Create(ctx context.Context, postID, authorID int64, content string) (*Comment, error)
	FindByID(ctx context.Context, id int64) (*Comment, error)
	AuthorOf(ctx context.Context, id int64) (int64, error)
	PostAuthorName(ctx context.Context, postID int64) (string, error)
	ListForPost(ctx context.Context, postID int64) ([]Comment, error)
	Update(ctx context.Context, id int64, content string) (*Comment, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles comment business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Add attaches a comment to a post on behalf of the principal. A missing
// post fails with shared.ErrNotFound before anything is written.
func (s *Service) Add(ctx context.Context, postID int64, principal shared.Principal, content string) (*CommentWithNames, error) {
	postAuthor, err := s.repo.PostAuthorName(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment, err := s.repo.Create(ctx, postID, principal.ID, content)
	if err != nil {
		return nil, err
	}
	return &CommentWithNames{
		Comment:       *comment,
		CommentAuthor: principal.Name,
		PostAuthor:    postAuthor,
	}, nil
}

// ListForPost returns a post's comments; a missing post is 404, an empty
// comment list is not.
func (s *Service) ListForPost(ctx context.Context, postID int64) ([]Comment, error) {
	if _, err := s.repo.PostAuthorName(ctx, postID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Comment{}
	}
	return list, nil
}

// AuthorOf exposes the ownership lookup for the access pipeline.
func (s *Service) AuthorOf(ctx context.Context, id int64) (int64, error) {
	return s.repo.AuthorOf(ctx, id)
}

// Update replaces a comment's content.
func (s *Service) Update(ctx context.Context, id int64, content string) (*Comment, error) {
	return s.repo.Update(ctx, id, content)
}

// Delete removes a comment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
