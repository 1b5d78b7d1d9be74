package services

import (
	"context"
	"fmt"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes a user's own chat history.
type HistoryService struct {
	store driven.HistoryStore
	limit int
}

// NewHistoryService creates the history query service.
func NewHistoryService(store driven.HistoryStore, limit int) *HistoryService {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return &HistoryService{
		store: store,
		limit: limit,
	}
}

// List returns the user's records, most recent first.
func (s *HistoryService) List(ctx context.Context, userID string) ([]domain.HistoryRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("history without owner: %w", domain.ErrInvalidInput)
	}
	return s.store.List(ctx, userID, s.limit)
}
