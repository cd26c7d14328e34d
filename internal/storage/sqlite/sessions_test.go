package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/cinebot/internal/core"
)

func newRepo(t *testing.T) *SessionRepo {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionRepo(db)
}

func TestSessionRepo_LoadUnknown(t *testing.T) {
	repo := newRepo(t)

	state, err := repo.Load(context.Background(), "tg:1")
	require.NoError(t, err)
	assert.Equal(t, "tg:1", state.Session)
	assert.Empty(t, state.Parameters)
}

func TestSessionRepo_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	state, err := core.NewState("tg:1", map[string]any{
		"movie":          "Inception",
		"searchedMovies": []core.Movie{{ID: 27205, Title: "Inception"}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "tg:1", state))

	got, err := repo.Load(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, "Inception", got.StringParam(core.ParamMovie))

	h, err := got.SearchedMovies()
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, int64(27205), h[0].ID)

	// upsert
	next, err := got.WithParam(core.ParamMovie, "Heat")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, "tg:1", next))

	got, err = repo.Load(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.StringParam(core.ParamMovie))
}

func TestSessionRepo_ResetAndPurge(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Save(ctx, "a", core.ConversationState{}))
	require.NoError(t, repo.Save(ctx, "b", core.ConversationState{}))

	require.NoError(t, repo.Reset(ctx, "a"))
	state, err := repo.Load(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, state.Parameters)

	n, err := repo.PurgeOlderThan(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.PurgeOlderThan(ctx, -time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
