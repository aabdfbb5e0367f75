// Package identity implements account registration, authentication and
// user administration use cases.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/cotizador/backend/internal/domain/identity"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/cotizador/backend/internal/infrastructure/auth"
	"github.com/cotizador/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// maxUsers caps the user listing
const maxUsers = 200

var errInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// AuthService handles registration, login and user administration
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
	}
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "register")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	user, err := identity.NewUser(req.Username, email, req.Password, req.IsAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues an access token.
// Inactive accounts are rejected the same way as wrong credentials so the
// response does not reveal whether the email exists.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "login")
	defer span.End()

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	if !user.CanLogin() || !user.VerifyPassword(req.Password) {
		return nil, errInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// GetUser returns a single user account
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers returns accounts ordered newest-first
func (s *AuthService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx, maxUsers)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}
	return responses, nil
}

// ToggleUserActive flips the account's active flag. A user cannot
// deactivate their own account.
func (s *AuthService) ToggleUserActive(ctx context.Context, id, actorID uuid.UUID) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "toggle_active")
	defer span.End()

	if id == actorID {
		return nil, shared.NewDomainError("INVALID_INPUT", "You cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.ToggleActive()
	if err := s.userRepo.Update(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword updates the current user's password after verifying the
// previous one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "auth", "change_password")
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("UNAUTHORIZED", "Current password is incorrect")
	}

	if err := user.ChangePassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}
