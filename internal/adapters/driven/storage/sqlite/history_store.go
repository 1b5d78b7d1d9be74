package sqlite

import (
	"context"
	"fmt"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Record appends one history record. Records are append-only; there is
// no update or delete path in the schema or in this store.
func (s *historyStore) Record(ctx context.Context, rec domain.HistoryRecord) error {
	if rec.UserID == "" {
		return fmt.Errorf("history record without owner: %w", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO chat_history (id, user_id, question, answer, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.Question, rec.Answer, rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting history record: %w", err)
	}
	return nil
}

// List returns the user's own records, most recent first.
// The query filters by user_id so a record can never leak across
// actors.
func (s *historyStore) List(ctx context.Context, userID string, limit int) ([]domain.HistoryRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, question, answer, created_at
		FROM chat_history
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.HistoryRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Question, &r.Answer, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return records, nil
}
