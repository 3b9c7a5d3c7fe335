package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/shared"
	"github.com/inkwell-blog/inkwell/internal/users"
)

type mockUserRepo struct {
	byID    map[int64]*users.User
	byEmail map[string]*users.User
	nextID  int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    make(map[int64]*users.User),
		byEmail: make(map[string]*users.User),
		nextID:  1,
	}
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*users.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) Create(ctx context.Context, params users.CreateUserParams) (*users.User, error) {
	if _, ok := m.byEmail[params.Email]; ok {
		return nil, shared.ErrEmailTaken
	}
	user := &users.User{
		ID:           m.nextID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Phone:        params.Phone,
		Role:         params.Role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.nextID++
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *mockUserRepo) ListUsers(ctx context.Context) ([]users.User, error) {
	var list []users.User
	for _, user := range m.byID {
		list = append(list, *user)
	}
	return list, nil
}

func newTestService(repo users.RepositoryPort) (*Service, *TokenCodec) {
	codec := NewTokenCodec("servicesecret", time.Hour)
	return NewService(repo, codec), codec
}

func TestRegisterIssuesToken(t *testing.T) {
	repo := newMockUserRepo()
	service, codec := newTestService(repo)

	token, err := service.Register(context.Background(), RegisterParams{
		Name:     "Ada",
		Phone:    "0800",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
		Role:     shared.RoleUser,
	})
	require.NoError(t, err)

	claims, failure := codec.Verify(token)
	require.Nil(t, failure)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, shared.RoleUser, claims.Role)

	stored, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2hunter2")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	service, _ := newTestService(repo)

	params := RegisterParams{
		Name:     "Ada",
		Phone:    "0800",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
		Role:     shared.RoleUser,
	}
	_, err := service.Register(context.Background(), params)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), params)
	assert.ErrorIs(t, err, shared.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newMockUserRepo()
	service, codec := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterParams{
		Name:     "Ada",
		Phone:    "0800",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
		Role:     shared.RoleAdmin,
	})
	require.NoError(t, err)

	token, err := service.Login(context.Background(), "ada@example.com", "hunter2hunter2")
	require.NoError(t, err)
	claims, failure := codec.Verify(token)
	require.Nil(t, failure)
	assert.Equal(t, shared.RoleAdmin, claims.Role)

	_, err = service.Login(context.Background(), "ada@example.com", "wrongpassword")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCurrentUser(t *testing.T) {
	repo := newMockUserRepo()
	service, _ := newTestService(repo)

	_, err := service.Register(context.Background(), RegisterParams{
		Name:     "Ada",
		Phone:    "0800",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
		Role:     shared.RoleUser,
	})
	require.NoError(t, err)

	user, err := service.CurrentUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	_, err = service.CurrentUser(context.Background(), 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
