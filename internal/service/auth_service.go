package service

import (
	"context"
	"errors"
	"fmt"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// AuthService handles admin registration and sessions.
type AuthService interface {
	// Register provisions the single admin account.
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	// Login verifies credentials and issues a signed session token.
	Login(ctx context.Context, email, password string) (token string, claims *auth.Claims, user *model.User, err error)
	// Logout revokes the session described by claims.
	Logout(ctx context.Context, claims *auth.Claims) error
	State(ctx context.Context) (model.ProvisioningState, error)
}

type authService struct {
	userRepo    repository.UserRepository
	hasher      auth.PasswordHasher
	sessions    *auth.SessionManager
	revocations auth.RevocationStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	sessions *auth.SessionManager,
	revocations auth.RevocationStore,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		hasher:      hasher,
		sessions:    sessions,
		revocations: revocations,
	}
}

// Register creates the admin account with a hashed password. Once an admin exists every
// call fails with ErrAdminExists and writes nothing.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	state, err := s.userRepo.State(ctx)
	if err != nil {
		return nil, fmt.Errorf("check provisioning state: %w", err)
	}
	if state == model.Provisioned {
		return nil, apperrors.ErrAdminExists
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Provision(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrAdminExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates the admin. An unknown email and a wrong password fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (string, *auth.Claims, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", nil, nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := s.sessions.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, nil, fmt.Errorf("issue session: %w", err)
	}
	return token, claims, user, nil
}

// Logout revokes the session until it would have expired.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	return s.revocations.Revoke(ctx, claims.ID, auth.Remaining(claims))
}

func (s *authService) State(ctx context.Context) (model.ProvisioningState, error) {
	return s.userRepo.State(ctx)
}
