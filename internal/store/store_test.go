package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reflex/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "reflex.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestPreferencesRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, ok, err := st.Get(ctx, "best-time")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Put(ctx, "best-time", "250"))
	require.NoError(t, st.Put(ctx, "best-time", "180"))
	v, ok, err := st.Get(ctx, "best-time")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "180", v)

	require.NoError(t, st.Delete(ctx, "best-time"))
	require.NoError(t, st.Delete(ctx, "best-time"))
	_, ok, err = st.Get(ctx, "best-time")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPreferencesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reflex.db")
	ctx := context.Background()

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Put(ctx, "theme-color", "rose"))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()
	v, ok, err := st.Get(ctx, "theme-color")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "rose", v)
}

func TestListAttemptsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	inputs := []model.ArchivedAttempt{
		{SessionID: "a", RecordedAt: base, ReactionMs: 300, Difficulty: model.DifficultyEasy},
		{SessionID: "a", RecordedAt: base.Add(time.Minute), ReactionMs: 250, Difficulty: model.DifficultyHard},
		{SessionID: "b", RecordedAt: base.Add(48 * time.Hour), ReactionMs: 200, Difficulty: model.DifficultyEasy},
	}
	for _, a := range inputs {
		_, err := st.InsertAttempt(ctx, a)
		require.NoError(t, err)
	}

	all, err := st.ListAttempts(ctx, model.AttemptFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 300, all[0].ReactionMs)
	assert.Equal(t, 200, all[2].ReactionMs)
	assert.True(t, all[0].RecordedAt.Equal(base))

	easy, err := st.ListAttempts(ctx, model.AttemptFilter{Difficulty: model.DifficultyEasy})
	require.NoError(t, err)
	assert.Len(t, easy, 2)

	since := base.Add(24 * time.Hour)
	recent, err := st.ListAttempts(ctx, model.AttemptFilter{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "b", recent[0].SessionID)
}
