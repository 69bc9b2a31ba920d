package service

import (
	"context"
	"errors"

	"taskflow/internal/domain"
	"taskflow/internal/logger"
	"taskflow/internal/repository"
)

// ErrInvalidCredentials covers every authentication failure: unknown
// email, wrong password, expired/invalid/wrong-class token, or a token
// whose user no longer exists. Callers must not learn which.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenService
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new user with a hashed password. Returns
// repository.ErrEmailTaken when the email is already registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if !s.hasher.Check(password, user.PasswordHash) {
		return TokenPair{}, ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user.Email)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefresh(user.Email)
	if err != nil {
		return TokenPair{}, err
	}

	logger.Info("user logged in", "user_id", user.ID)
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token from a valid refresh token. The
// refresh token itself stays valid until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	email, err := s.tokens.Decode(refreshToken, TokenClassRefresh)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.IssueAccess(email)
}

// Authorize resolves a bearer access token to its user.
func (s *AuthService) Authorize(ctx context.Context, accessToken string) (*domain.User, error) {
	email, err := s.tokens.Decode(accessToken, TokenClassAccess)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
