package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token classes. An access token can never stand in for a refresh token
// or the other way around.
const (
	TokenClassAccess  = "access"
	TokenClassRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService issues and verifies HS256 tokens with a single
// process-wide secret. Constructed once from config and injected.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) IssueAccess(subject string) (string, error) {
	return s.issue(subject, TokenClassAccess, s.accessTTL)
}

func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, TokenClassRefresh, s.refreshTTL)
}

func (s *TokenService) issue(subject, class string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        subject,
		"token_type": class,
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode verifies signature, time claims and token class, and returns
// the subject. Untrusted input only ever produces ErrTokenExpired or
// ErrTokenInvalid.
func (s *TokenService) Decode(tokenString, class string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	if tt, _ := claims["token_type"].(string); tt != class {
		return "", ErrTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}
