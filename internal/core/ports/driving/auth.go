package driving

import (
	"context"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

// AuthService establishes and tears down credentialed sessions for the
// web variant.
type AuthService interface {
	// Signup creates a new user account.
	Signup(ctx context.Context, username, password string) (*domain.User, error)

	// Login verifies credentials and opens a session. Returns
	// domain.ErrInvalidCredentials on any mismatch; it does not reveal
	// whether the username exists.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Logout closes the session with the given ID.
	Logout(ctx context.Context, sessionID string) error

	// Authenticate resolves a session ID to its user, rejecting
	// expired or unknown sessions with domain.ErrUnauthenticated.
	Authenticate(ctx context.Context, sessionID string) (*domain.User, error)
}
