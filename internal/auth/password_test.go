package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/splitmate/splitmate/internal/models"
)

// memoryUserStore is a minimal in-memory UserStorage for tests.
type memoryUserStore struct {
	byID map[string]*models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byID: make(map[string]*models.User)}
}

func (m *memoryUserStore) CreateUser(_ context.Context, user *models.User) error {
	clone := *user
	m.byID[user.ID] = &clone
	return nil
}

func (m *memoryUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range m.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memoryUserStore) SetPasswordHash(_ context.Context, userID, hash string) error {
	user, ok := m.byID[userID]
	if !ok {
		return models.NewNotFoundError("user", userID)
	}
	user.PasswordHash = hash
	return nil
}

func (m *memoryUserStore) UpdateUser(_ context.Context, user *models.User) error {
	stored, ok := m.byID[user.ID]
	if !ok {
		return models.NewNotFoundError("user", user.ID)
	}
	stored.Email = user.Email
	stored.DisplayName = user.DisplayName
	return nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newMemoryUserStore()
	authn := NewPasswordAuthenticator(store)
	ctx := context.Background()

	user, err := authn.Register(ctx, "alice@example.com", "Alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" || user.PasswordHash == "" {
		t.Error("expected ID and password hash to be set")
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in plain text")
	}

	got, err := authn.Authenticate(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated user %s, want %s", got.ID, user.ID)
	}

	if _, err := authn.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := authn.Authenticate(ctx, "nobody@example.com", "whatever-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	authn := NewPasswordAuthenticator(newMemoryUserStore())

	if _, err := authn.Register(context.Background(), "alice@example.com", "Alice", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMemoryUserStore()
	authn := NewPasswordAuthenticator(store)
	ctx := context.Background()

	if _, err := authn.Register(ctx, "alice@example.com", "Alice", "correct-horse"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := authn.Register(ctx, "alice@example.com", "Imposter", "battery-staple"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

// Registering with the email of a placeholder member claims the existing
// account: same user ID, so group history stays attached.
func TestRegisterClaimsPlaceholder(t *testing.T) {
	store := newMemoryUserStore()
	authn := NewPasswordAuthenticator(store)
	ctx := context.Background()

	placeholder := models.NewUser("bob@example.com", "bob@example.com", "")
	if err := store.CreateUser(ctx, placeholder); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Until claimed, login is refused outright.
	if _, err := authn.Authenticate(ctx, "bob@example.com", "anything-long"); !errors.Is(err, ErrNoPassword) {
		t.Errorf("expected ErrNoPassword, got %v", err)
	}

	user, err := authn.Register(ctx, "bob@example.com", "Bob", "battery-staple")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID != placeholder.ID {
		t.Errorf("claimed user %s, want placeholder %s", user.ID, placeholder.ID)
	}
	if user.DisplayName != "Bob" {
		t.Errorf("DisplayName = %s, want Bob", user.DisplayName)
	}

	got, err := authn.Authenticate(ctx, "bob@example.com", "battery-staple")
	if err != nil {
		t.Fatalf("Authenticate after claim failed: %v", err)
	}
	if got.ID != placeholder.ID {
		t.Errorf("authenticated %s, want %s", got.ID, placeholder.ID)
	}
}
