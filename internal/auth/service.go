package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/shared"
	"github.com/inkwell-blog/inkwell/internal/users"
)

const bcryptCost = 10

// Service wraps registration and login rules.
type Service struct {
	repo  users.RepositoryPort
	codec *TokenCodec
}

// NewService constructs a new Service.
func NewService(repo users.RepositoryPort, codec *TokenCodec) *Service {
	return &Service{repo: repo, codec: codec}
}

// RegisterParams carries a validated registration request.
type RegisterParams struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Role     shared.Role
}

// Register creates an account and returns a freshly issued token. A taken
// email fails with shared.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, params RegisterParams) (string, error) {
	if _, err := s.repo.FindByEmail(ctx, params.Email); err == nil {
		return "", shared.ErrEmailTaken
	} else if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return "", err
	}

	user, err := s.repo.Create(ctx, users.CreateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hashed),
		Phone:        params.Phone,
		Role:         params.Role,
	})
	if err != nil {
		return "", err
	}

	return s.codec.Issue(user.ID, user.Name, user.Role)
}

// Login validates email/password credentials and returns a token. An unknown
// email fails with shared.ErrNotFound; a wrong password with
// shared.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrInvalidCredentials
	}
	return s.codec.Issue(user.ID, user.Name, user.Role)
}

// CurrentUser returns the stored profile of the resolved principal.
func (s *Service) CurrentUser(ctx context.Context, id int64) (*users.User, error) {
	return s.repo.FindByID(ctx, id)
}
