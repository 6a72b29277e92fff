package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/screening/pkg/apperr"
)

const minPasswordLen = 6

// AuthUseCase describes recruiter registration and login.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	// Login accepts a username or an email.
	Login(ctx context.Context, login, password string) (AuthResult, error)
	// EnsureUser creates the account unless one with the email exists.
	EnsureUser(ctx context.Context, in RegisterInput, isAdmin bool) (User, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// TokenGenerator issues the bearer token returned on login.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

type authService struct {
	repo   UserRepository
	tokens TokenGenerator
	cost   int
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator) AuthUseCase {
	return &authService{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
}

// NewAuthServiceWithCost is NewAuthService with a custom bcrypt cost.
func NewAuthServiceWithCost(repo UserRepository, tokens TokenGenerator, cost int) AuthUseCase {
	return &authService{repo: repo, tokens: tokens, cost: cost}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	user, err := s.create(ctx, in, false)
	if err != nil {
		return AuthResult{}, err
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, login, password string) (AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	var (
		user User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.repo.GetByEmail(ctx, login)
	} else {
		user, err = s.repo.GetByUsername(ctx, login)
	}
	if errors.Is(err, ErrNotFound) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) EnsureUser(ctx context.Context, in RegisterInput, isAdmin bool) (User, error) {
	if u, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return u, nil
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	return s.create(ctx, in, isAdmin)
}

func (s *authService) create(ctx context.Context, in RegisterInput, isAdmin bool) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}
	fields := map[string]string{}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "invalid email"
	}
	if strings.Contains(username, "@") {
		fields["username"] = "must not contain @"
	}
	if len(in.Password) < minPasswordLen {
		fields["password"] = "too short"
	}
	if len(fields) > 0 {
		return User{}, apperr.InvalidFields(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}
