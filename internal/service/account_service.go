package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medfinder-api/internal/auth"
	"medfinder-api/internal/models"
)

// AccountService registers users and issues their tokens
type AccountService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// UserRepository interface for dependency injection
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer issues a token for a user id.
type TokenIssuer interface {
	Generate(userID string) (string, error)
}

// NewAccountService creates a new account service
func NewAccountService(repo UserRepository, tokens TokenIssuer) *AccountService {
	return &AccountService{repo: repo, tokens: tokens}
}

// Register creates an account and returns a token for it.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return nil, models.NewValidationError("Email, password, and name are required")
	}

	role := req.Role
	switch role {
	case "":
		role = models.RoleUser
	case models.RoleUser, models.RoleStoreOwner:
	default:
		return nil, models.NewValidationError("Unknown role %q", req.Role)
	}

	existing, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("service: failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, models.NewValidationError("User already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrAlreadyExists) {
			return nil, models.NewValidationError("User already exists")
		}
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login verifies credentials and returns a fresh token.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &models.AuthorizationError{Message: "Invalid credentials"}
		}
		return nil, fmt.Errorf("service: failed to look up user: %w", err)
	}

	if !auth.ComparePassword(user.PasswordHash, req.Password) {
		return nil, &models.AuthorizationError{Message: "Invalid credentials"}
	}

	return s.issue(*user)
}

func (s *AccountService) issue(user models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("service: failed to issue token: %w", err)
	}

	return &models.AuthResponse{
		Token: token,
		User: models.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}
