package auth

import (
	"context"

	"github.com/splitmate/splitmate/internal/models"
)

// Authenticator verifies user credentials. The ledger core never consumes
// ambient identity; whatever this layer authenticates is passed into the
// core as explicit user IDs.
type Authenticator interface {
	// Register creates a new account for the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the user if valid.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
