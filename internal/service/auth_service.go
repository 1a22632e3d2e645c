package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/splitmate/splitmate/internal/auth"
	"github.com/splitmate/splitmate/internal/models"
	"github.com/splitmate/splitmate/internal/storage"
)

// AuthService handles registration, login and profile management. It sits
// at the collaborator boundary: the ledger core below it only ever sees
// the authenticated user ID.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new user account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, "", models.NewValidationError("email is required")
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, "", models.NewValidationError("display name is required")
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		slog.Warn("Registration failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns it with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

// GetProfile retrieves a user's profile.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// UpdateProfile changes a user's display name and/or email. Empty fields
// are left untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, displayName, email string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if displayName = strings.TrimSpace(displayName); displayName != "" {
		user.DisplayName = displayName
	}
	if email = strings.TrimSpace(strings.ToLower(email)); email != "" {
		user.Email = email
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("Profile updated", "user_id", userID)
	return user, nil
}
