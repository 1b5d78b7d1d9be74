package driven

import (
	"context"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

// HistoryStore persists question/answer exchanges per user.
// Records are append-only; no update or delete is exposed.
type HistoryStore interface {
	// Record appends one history record, timestamped at write time.
	Record(ctx context.Context, rec domain.HistoryRecord) error

	// List returns the user's own records, most recent first, bounded
	// to limit. Implementations must filter strictly by user.
	List(ctx context.Context, userID string, limit int) ([]domain.HistoryRecord, error)
}

// UserStore persists user accounts.
type UserStore interface {
	// Create stores a new user. Returns domain.ErrAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, user domain.User) error

	// GetByUsername returns the user with the given username, or
	// domain.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByID returns the user with the given ID, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// SessionStore persists login sessions.
type SessionStore interface {
	// Create stores a new session.
	Create(ctx context.Context, session domain.Session) error

	// Get returns the session with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error
}
