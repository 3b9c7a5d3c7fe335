package users_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/shared"
	"github.com/inkwell-blog/inkwell/internal/users"
	_ "github.com/inkwell-blog/inkwell/testing"
)

type stubRepo struct {
	list []users.User
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*users.User, error) {
	for i := range s.list {
		if s.list[i].ID == id {
			return &s.list[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	for i := range s.list {
		if s.list[i].Email == email {
			return &s.list[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, params users.CreateUserParams) (*users.User, error) {
	return nil, shared.ErrEmailTaken
}

func (s *stubRepo) ListUsers(ctx context.Context) ([]users.User, error) {
	return s.list, nil
}

// TestListUsersIsAdminOnly mounts the user routes exactly as the application
// router does, behind the admin role gate.
func TestListUsersIsAdminOnly(t *testing.T) {
	repo := &stubRepo{list: []users.User{
		{ID: 1, Name: "Ada", Email: "ada@example.com", Role: shared.RoleUser, PasswordHash: "x"},
		{ID: 2, Name: "Root", Email: "root@example.com", Role: shared.RoleAdmin, PasswordHash: "x"},
	}}

	codec := auth.NewTokenCodec("userssecret", time.Hour)
	guard := auth.Middleware{Resolver: auth.NewResolver(codec, repo, nil)}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := users.NewHandler(logger, users.NewService(repo))

	router := chi.NewRouter()
	router.Route("/users", func(r chi.Router) {
		r.Use(guard.RequireRoles(shared.RoleAdmin))
		handler.MountRoutes(r)
	})

	call := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
		return res
	}

	res := call("")
	assert.Equal(t, http.StatusUnauthorized, res.Code, "anonymous caller is rejected")

	userToken, err := codec.Issue(1, "Ada", shared.RoleUser)
	require.NoError(t, err)
	res = call(userToken)
	assert.Equal(t, http.StatusUnauthorized, res.Code, "USER role does not pass the admin gate")

	adminToken, err := codec.Issue(2, "Root", shared.RoleAdmin)
	require.NoError(t, err)
	res = call(adminToken)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"ada@example.com"`)
	assert.NotContains(t, res.Body.String(), "PasswordHash")
	assert.NotContains(t, res.Body.String(), `"x"`)
}
