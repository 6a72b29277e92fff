package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/auth"
	"github.com/artem13815/screening/pkg/repository/memory"
)

type fakeTokens struct{}

func (fakeTokens) Generate(_ context.Context, u auth.User) (string, error) {
	return "token-" + u.Username, nil
}

func newAuth() auth.AuthUseCase {
	return auth.NewAuthServiceWithCost(memory.New().Users(), fakeTokens{}, bcrypt.MinCost)
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	res, err := uc.Register(ctx, auth.RegisterInput{Email: "HR@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "hr@example.com", res.User.Email)
	assert.Equal(t, "hr", res.User.Username)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)
	assert.Equal(t, "token-hr", res.Token)

	for _, login := range []string{"hr", "HR", "hr@example.com"} {
		got, err := uc.Login(ctx, login, "secret1")
		require.NoError(t, err, login)
		assert.Equal(t, res.User.ID, got.User.ID)
	}

	_, err = uc.Login(ctx, "hr", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = uc.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = uc.Login(ctx, "", "")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	_, err = uc.Register(ctx, auth.RegisterInput{Username: "other", Email: "hr@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, auth.ErrUserAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	_, err := newAuth().Register(context.Background(), auth.RegisterInput{Username: "a@b", Email: "nope", Password: "123"})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Len(t, e.Fields, 3)
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	uc := newAuth()
	in := auth.RegisterInput{Username: "hr", Email: "hr@example.com", Password: "secret1"}

	first, err := uc.EnsureUser(context.Background(), in, true)
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)

	second, err := uc.EnsureUser(context.Background(), in, true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
