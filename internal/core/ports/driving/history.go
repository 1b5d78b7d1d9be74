package driving

import (
	"context"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

// HistoryService exposes a user's own chat history.
type HistoryService interface {
	// List returns the user's records, most recent first, bounded to
	// domain.DefaultHistoryLimit.
	List(ctx context.Context, userID string) ([]domain.HistoryRecord, error)
}
