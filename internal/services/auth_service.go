// Package services – AuthService
//
// This file implements the AuthService, which authenticates admin users
// and issues signed tokens for the protected endpoints. Passwords are
// stored as argon2id encoded hashes; login verifies the hash and returns
// an HS256 JWT carrying the user id, username, and role.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/matthewhartstonge/argon2"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage"
)

// Claims is the JWT payload issued on login and expected by the auth
// middleware.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService authenticates users against a storage backend and issues
// and verifies JWTs.
type AuthService struct {
	// Store is the pluggable persistence backend.
	Store storage.Storage
	// Secret signs and verifies tokens (HS256).
	Secret []byte
	// TokenTTL bounds token lifetime.
	TokenTTL time.Duration
}

// NewAuthService constructs an AuthService with the given signing secret
// and token lifetime.
func NewAuthService(store storage.Storage, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{Store: store, Secret: secret, TokenTTL: ttl}
}

// HashPassword returns the argon2id encoded hash of a plaintext password.
func HashPassword(plain string) (string, error) {
	cfg := argon2.DefaultConfig()
	encoded, err := cfg.HashEncoded([]byte(plain))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// VerifyPassword reports whether plain matches the encoded argon2id hash.
func VerifyPassword(encoded, plain string) bool {
	ok, err := argon2.VerifyEncoded([]byte(plain), []byte(encoded))
	return err == nil && ok
}

// Login verifies the credentials and returns a signed token plus the
// authenticated user. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.Store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !VerifyPassword(u.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ParseToken verifies a token string and returns its claims. Only HS256 is
// accepted.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// CreateUser hashes the password and stores a new admin account.
func (s *AuthService) CreateUser(ctx context.Context, in schema.InsertUser) (*domain.User, error) {
	in, err := in.Validate()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	in.Password = hash
	u, err := s.Store.CreateUser(ctx, in)
	if errors.Is(err, storage.ErrUsernameTaken) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
