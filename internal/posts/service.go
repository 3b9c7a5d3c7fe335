package posts

import (
	"context"
)

// RepositoryPort defines data access methods for posts.
type RepositoryPort interface {
	Create(ctx context.Context, params CreatePostParams) (*Post, error)
	FindByID(ctx context.Context, id int64) (*Post, error)
	AuthorOf(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]Post, error)
	Update(ctx context.Context, id int64, params UpdatePostParams) (*Post, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles post business logic.
type Service struct {
	repo  RepositoryPort
	cache *ListCache
}

// NewService builds Service instance. The cache may be nil.
func NewService(repo RepositoryPort, cache *ListCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Create stores a new post and invalidates cached listings.
func (s *Service) Create(ctx context.Context, params CreatePostParams) (*Post, error) {
	post, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return post, nil
}

// Get returns one post by id.
func (s *Service) Get(ctx context.Context, id int64) (*Post, error) {
	return s.repo.FindByID(ctx, id)
}

// AuthorOf exposes the ownership lookup for the access pipeline.
func (s *Service) AuthorOf(ctx context.Context, id int64) (int64, error) {
	return s.repo.AuthorOf(ctx, id)
}

// List returns a filtered page of posts, serving from the cache when it can.
// The scope keeps caller-bound listings apart from the admin view.
func (s *Service) List(ctx context.Context, scope string, filter ListFilter) (*ListResult, error) {
	key := CacheKey(scope, filter)
	return s.cache.GetOrFill(ctx, key, func(ctx context.Context) (*ListResult, error) {
		list, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &ListResult{
			NumberOfRecords: len(list),
			Posts:           project(list, filter.Fields),
			Page:            filter.Page.Page,
			Limit:           filter.Page.Limit,
		}, nil
	})
}

// Update applies a partial update and invalidates cached listings.
func (s *Service) Update(ctx context.Context, id int64, params UpdatePostParams) (*Post, error) {
	post, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return post, nil
}

// Delete removes a post and its comments, then invalidates cached listings.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// projectable maps requestable field names onto the post representation.
var projectable = map[string]func(Post) any{
	"id":              func(p Post) any { return p.ID },
	"title":           func(p Post) any { return p.Title },
	"content":         func(p Post) any { return p.Content },
	"tags":            func(p Post) any { return p.Tags },
	"authorId":        func(p Post) any { return p.AuthorID },
	"publicationDate": func(p Post) any { return p.PublicationDate },
	"updatedAt":       func(p Post) any { return p.UpdatedAt },
}

// project renders posts with only the requested fields; an empty or entirely
// unknown field list yields the full representation.
func project(list []Post, fields []string) []map[string]any {
	known := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := projectable[f]; ok {
			known = append(known, f)
		}
	}
	if len(known) == 0 {
		for name := range projectable {
			known = append(known, name)
		}
	}

	out := make([]map[string]any, 0, len(list))
	for _, post := range list {
		row := make(map[string]any, len(known))
		for _, f := range known {
			row[f] = projectable[f](post)
		}
		out = append(out, row)
	}
	return out
}
