package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

func seedUser(t *testing.T, store *Store, id, username string) {
	t.Helper()
	require.NoError(t, store.UserStore().Create(context.Background(), domain.User{
		ID: id, Username: username, PasswordHash: "h", CreatedAt: time.Now(),
	}))
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "asha")
	history := store.HistoryStore()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, history.Record(ctx, domain.HistoryRecord{
			ID:        fmt.Sprintf("r%d", i),
			UserID:    "u1",
			Question:  fmt.Sprintf("question %d", i),
			Answer:    fmt.Sprintf("answer %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := history.List(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Most recent first.
	assert.Equal(t, "question 2", records[0].Question)
	assert.Equal(t, "question 0", records[2].Question)
}

func TestHistoryStore_LimitBoundsResults(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "asha")
	history := store.HistoryStore()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		require.NoError(t, history.Record(ctx, domain.HistoryRecord{
			ID:        fmt.Sprintf("r%d", i),
			UserID:    "u1",
			Question:  "q",
			Answer:    "a",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := history.List(ctx, "u1", domain.DefaultHistoryLimit)
	require.NoError(t, err)
	assert.Len(t, records, domain.DefaultHistoryLimit)
}

func TestHistoryStore_ScopedToOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	seedUser(t, store, "ua", "asha")
	seedUser(t, store, "ub", "bilal")
	history := store.HistoryStore()

	require.NoError(t, history.Record(ctx, domain.HistoryRecord{
		ID: "ra", UserID: "ua", Question: "asha's question", Answer: "a", CreatedAt: time.Now(),
	}))
	require.NoError(t, history.Record(ctx, domain.HistoryRecord{
		ID: "rb", UserID: "ub", Question: "bilal's question", Answer: "a", CreatedAt: time.Now(),
	}))

	// A record written for one actor is never returned to another.
	records, err := history.List(ctx, "ub", 50)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "bilal's question", records[0].Question)
}

func TestHistoryStore_RecordRequiresOwner(t *testing.T) {
	store := newTestStore(t)

	err := store.HistoryStore().Record(context.Background(), domain.HistoryRecord{
		ID: "r1", Question: "q", Answer: "a", CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
