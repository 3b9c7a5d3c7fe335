package posts

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/shared"
	_ "github.com/inkwell-blog/inkwell/testing"
)

type mockRepository struct {
	posts     map[int64]*Post
	nextID    int64
	listCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{posts: make(map[int64]*Post), nextID: 1}
}

func (m *mockRepository) Create(ctx context.Context, params CreatePostParams) (*Post, error) {
	post := &Post{
		ID:              m.nextID,
		Title:           params.Title,
		Content:         params.Content,
		Tags:            params.Tags,
		AuthorID:        params.AuthorID,
		PublicationDate: time.Now(),
		UpdatedAt:       time.Now(),
	}
	m.nextID++
	m.posts[post.ID] = post
	return post, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return post, nil
}

func (m *mockRepository) AuthorOf(ctx context.Context, id int64) (int64, error) {
	post, ok := m.posts[id]
	if !ok {
		return 0, shared.ErrNotFound
	}
	return post.AuthorID, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Post, error) {
	m.listCalls++
	var result []Post
	for _, post := range m.posts {
		if filter.AuthorID != 0 && post.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Title != "" && post.Title != filter.Title {
			continue
		}
		if len(filter.Tags) > 0 && !overlaps(post.Tags, filter.Tags) {
			continue
		}
		result = append(result, *post)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	offset := filter.Page.Offset()
	if offset > len(result) {
		offset = len(result)
	}
	end := offset + filter.Page.Limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func (m *mockRepository) Update(ctx context.Context, id int64, params UpdatePostParams) (*Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if params.Title != nil {
		post.Title = *params.Title
	}
	if params.Content != nil {
		post.Content = *params.Content
	}
	if params.Tags != nil {
		post.Tags = params.Tags
	}
	post.UpdatedAt = time.Now()
	return post, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func newCachedService(t *testing.T) (*Service, *mockRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := newMockRepository()
	return NewService(repo, NewListCache(client, time.Minute, nil)), repo
}

func seed(t *testing.T, repo *mockRepository, authorID int64, title string, tags ...string) *Post {
	t.Helper()
	post, err := repo.Create(context.Background(), CreatePostParams{
		Title:    title,
		Content:  "content of " + title,
		Tags:     tags,
		AuthorID: authorID,
	})
	require.NoError(t, err)
	return post
}

func TestListServesFromCache(t *testing.T) {
	service, repo := newCachedService(t)
	seed(t, repo, 1, "first", "go")

	filter := ListFilter{AuthorID: 1, Page: shared.NewPagination(1, 10)}

	first, err := service.List(context.Background(), "user:1", filter)
	require.NoError(t, err)
	assert.Equal(t, 1, first.NumberOfRecords)
	assert.Equal(t, 1, repo.listCalls)

	second, err := service.List(context.Background(), "user:1", filter)
	require.NoError(t, err)
	assert.Equal(t, first.NumberOfRecords, second.NumberOfRecords)
	assert.Equal(t, 1, repo.listCalls, "second read must come from the cache")
}

func TestMutationsInvalidateCache(t *testing.T) {
	service, repo := newCachedService(t)
	seed(t, repo, 1, "first", "go")

	filter := ListFilter{AuthorID: 1, Page: shared.NewPagination(1, 10)}

	_, err := service.List(context.Background(), "user:1", filter)
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = service.Create(context.Background(), CreatePostParams{
		Title: "second", Content: "c", Tags: []string{"go"}, AuthorID: 1,
	})
	require.NoError(t, err)

	result, err := service.List(context.Background(), "user:1", filter)
	require.NoError(t, err)
	assert.Equal(t, 2, result.NumberOfRecords)
	assert.Equal(t, 2, repo.listCalls, "create must invalidate cached listings")
}

func TestListWithoutCache(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	seed(t, repo, 1, "solo")

	result, err := service.List(context.Background(), "user:1", ListFilter{AuthorID: 1, Page: shared.NewPagination(0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NumberOfRecords)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
}

func TestListProjection(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	seed(t, repo, 1, "projected", "go")

	result, err := service.List(context.Background(), "user:1", ListFilter{
		AuthorID: 1,
		Fields:   []string{"id", "title", "bogus"},
		Page:     shared.NewPagination(1, 10),
	})
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	row := result.Posts[0]
	assert.Contains(t, row, "id")
	assert.Contains(t, row, "title")
	assert.NotContains(t, row, "content", "unselected fields stay out")
	assert.NotContains(t, row, "bogus", "unknown fields are ignored")
}

func TestListPagination(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, nil)
	for i := 0; i < 25; i++ {
		seed(t, repo, 1, "post")
	}

	page2, err := service.List(context.Background(), "user:1", ListFilter{
		AuthorID: 1,
		Page:     shared.NewPagination(2, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, page2.NumberOfRecords)
	assert.Equal(t, 2, page2.Page)

	page3, err := service.List(context.Background(), "user:1", ListFilter{
		AuthorID: 1,
		Page:     shared.NewPagination(3, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, page3.NumberOfRecords)
}

func TestCacheKeyIsStable(t *testing.T) {
	a := CacheKey("user:1", ListFilter{Tags: []string{"b", "a"}, Fields: []string{"title", "id"}, Page: shared.NewPagination(1, 10)})
	b := CacheKey("user:1", ListFilter{Tags: []string{"a", "b"}, Fields: []string{"id", "title"}, Page: shared.NewPagination(1, 10)})
	assert.Equal(t, a, b, "tag and field order must not change the key")

	c := CacheKey("user:2", ListFilter{Tags: []string{"a", "b"}, Page: shared.NewPagination(1, 10)})
	assert.NotEqual(t, a, c, "different scopes must not share entries")
}
