package usecase

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"inkwell/src/core/domain"
	"inkwell/src/core/ports"
)

// AuthService registers users and exchanges credentials for bearer
// tokens. Token signing is delegated to the TokenIssuer port.
type AuthService struct {
	repo   ports.BlogRepository
	tokens ports.TokenIssuer
	log    *slog.Logger
}

func NewAuthService(repo ports.BlogRepository, tokens ports.TokenIssuer, log *slog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Register creates a user with a bcrypt-hashed password and returns a
// signed token for immediate use.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if len(password) < 6 {
		return nil, domain.NewValidationError("password", "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", user.ID)

	return s.result(user)
}

// Login verifies credentials. An unknown email and a wrong password
// both yield the same unauthorized error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	return s.result(user)
}

func (s *AuthService) result(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(domain.Identity{ID: user.ID, Name: user.Name})
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}
