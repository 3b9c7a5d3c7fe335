package users

import (
	"time"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// User represents a registered account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         shared.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserParams carries the fields needed to create an account.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         shared.Role
}
