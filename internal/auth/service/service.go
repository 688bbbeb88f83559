// Package service contains the authentication business logic.
package service

import (
	"context"
	"errors"

	"leadtracker_backend/internal/auth/password"
	"leadtracker_backend/internal/auth/repository"
	"leadtracker_backend/internal/auth/transport"
	"leadtracker_backend/platform/apperr"
	"leadtracker_backend/platform/logger"

	"github.com/google/uuid"
)

const msgInvalidCredentials = "Invalid credentials"

// Repository defines the data access interface needed by the auth service.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.User, error)
}

// TokenSigner issues access tokens for authenticated users.
type TokenSigner interface {
	Sign(userID uuid.UUID, email string) (string, error)
}

// Service handles authentication operations.
type Service struct {
	repo   Repository
	signer TokenSigner
	log    *logger.Logger
}

// New creates a new auth service.
func New(repo Repository, signer TokenSigner, log *logger.Logger) *Service {
	return &Service{repo: repo, signer: signer, log: log}
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error so the endpoint does not leak which
// accounts exist.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.AuthEvent("login", req.Email, false, "unknown email")
			return transport.LoginResponse{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return transport.LoginResponse{}, err
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("login", req.Email, false, "wrong password")
		return transport.LoginResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	tok, err := s.signer.Sign(user.ID, user.Email)
	if err != nil {
		return transport.LoginResponse{}, err
	}

	s.log.AuthEvent("login", user.Email, true, "")
	return transport.LoginResponse{
		Token: tok,
		User:  toUserResponse(user),
	}, nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.UserResponse{}, apperr.NotFound("User not found")
		}
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
