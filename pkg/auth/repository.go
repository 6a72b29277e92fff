package auth

import (
	"context"

	"github.com/artem13815/screening/pkg/apperr"
)

var (
	ErrNotFound           = apperr.NotFound("USER_NOT_FOUND", "user not found")
	ErrUserAlreadyExists  = apperr.Conflict("USER_EXISTS", "user already exists")
	ErrInvalidCredentials = apperr.Auth("INVALID_CREDENTIALS", "invalid credentials")
)

// UserRepository abstracts persistence of recruiter accounts. Usernames and
// emails are unique case-insensitively.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}
