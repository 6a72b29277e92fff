package memory

import (
	"context"
	"strings"

	"github.com/artem13815/screening/pkg/auth"
)

type UserRepository struct{ db *DB }

func (r *UserRepository) Create(_ context.Context, u auth.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, ex := range r.db.users {
		if strings.EqualFold(ex.Email, u.Email) || strings.EqualFold(ex.Username, u.Username) {
			return auth.ErrUserAlreadyExists
		}
	}
	r.db.users = append(r.db.users, u)
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	return r.find(func(u auth.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (auth.User, error) {
	return r.find(func(u auth.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *UserRepository) find(match func(auth.User) bool) (auth.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if match(u) {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}
