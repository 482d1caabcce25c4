package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/tendant/learning-tracks/internal/domain"
	"github.com/tendant/learning-tracks/internal/repository"
)

// RegisterRequest carries a new account
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// UserService registers accounts
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService creates a user service hashing passwords with the given bcrypt cost
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// Register hashes the password and stores the user. A taken name or email
// fails with domain.ErrUserExists.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user := &domain.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Token is an issued access token
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService exchanges credentials for signed access tokens
type AuthService struct {
	users repository.UserRepository
	auth  *jwtauth.JWTAuth
	ttl   time.Duration
}

// NewAuthService creates an auth service signing tokens with auth
func NewAuthService(users repository.UserRepository, auth *jwtauth.JWTAuth, ttl time.Duration) *AuthService {
	return &AuthService{users: users, auth: auth, ttl: ttl}
}

// Login verifies the password and returns a token carrying the email claim.
// Unknown emails and wrong passwords both fail with domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	claims := map[string]interface{}{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.ttl)

	_, tokenString, err := s.auth.Encode(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{AccessToken: tokenString, ExpiresAt: time.Now().Add(s.ttl).UTC()}, nil
}
