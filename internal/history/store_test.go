package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/history"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGetByID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	saved, err := store.Record(ctx, history.Entry{
		Filename:    "resume.pdf",
		Source:      "heuristic",
		Titles:      []string{"Backend Engineer / Python Developer"},
		Scores:      map[string]float64{"Backend Engineer / Python Developer": 0.7},
		Explanation: "Heuristic fallback used.",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "resume.pdf", got.Filename)
	assert.Equal(t, "heuristic", got.Source)
	assert.Equal(t, saved.Titles, got.Titles)
	assert.Equal(t, saved.Scores, got.Scores)
	assert.Equal(t, saved.Explanation, got.Explanation)
}

func TestGetByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, history.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"old.txt", "mid.txt", "new.txt"} {
		_, err := store.Record(ctx, history.Entry{
			Filename:  name,
			Source:    "heuristic",
			Titles:    []string{"Software Engineer (General)"},
			Scores:    map[string]float64{"Software Engineer (General)": 0.7},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new.txt", entries[0].Filename)
	assert.Equal(t, "mid.txt", entries[1].Filename)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
