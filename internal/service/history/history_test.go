package history

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sandevgo/cinebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movies(ids ...int64) []core.Movie {
	out := make([]core.Movie, len(ids))
	for i, id := range ids {
		out[i] = core.Movie{ID: id, Title: fmt.Sprintf("Movie %d", id)}
	}
	return out
}

func ids(h []core.Movie) []int64 {
	out := make([]int64, len(h))
	for i, m := range h {
		out[i] = m.ID
	}
	return out
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		history []core.Movie
		add     []core.Movie
		want    []int64
	}{
		{
			name:    "empty into empty",
			history: nil,
			add:     nil,
			want:    []int64{},
		},
		{
			name:    "append preserves order",
			history: movies(1, 2),
			add:     movies(3, 4),
			want:    []int64{1, 2, 3, 4},
		},
		{
			name:    "skips known ids",
			history: movies(1, 2, 3),
			add:     movies(2, 4, 1, 5),
			want:    []int64{1, 2, 3, 4, 5},
		},
		{
			name:    "dedups inside new batch",
			history: movies(1),
			add:     movies(2, 2, 3, 3),
			want:    []int64{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.history, tt.add)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Merge() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_EvictsOldestFirst(t *testing.T) {
	var base []int64
	for i := int64(1); i <= core.MaxSearchedMovies; i++ {
		base = append(base, i)
	}
	h := Merge(nil, movies(base...))
	require.Len(t, h, core.MaxSearchedMovies)

	got := Merge(h, movies(101, 102, 103))

	require.Len(t, got, core.MaxSearchedMovies)
	assert.Equal(t, int64(4), got[0].ID, "three oldest entries must be evicted")
	assert.Equal(t, []int64{101, 102, 103}, ids(got[len(got)-3:]))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	h := core.SessionHistory(movies(1, 2))
	add := movies(3)
	snapshot := append(core.SessionHistory(nil), h...)

	_ = Merge(h, add)

	assert.Equal(t, snapshot, h)
	assert.Len(t, add, 1)
}

func TestMerge_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	randomBatch := func(n int) []core.Movie {
		batch := make([]core.Movie, n)
		for i := range batch {
			batch[i] = core.Movie{ID: rnd.Int63n(40), Title: "m"}
		}
		return batch
	}

	for i := 0; i < 200; i++ {
		h := Merge(nil, randomBatch(rnd.Intn(10)))
		m1 := randomBatch(rnd.Intn(8))
		m2 := randomBatch(rnd.Intn(8))

		// identity
		assert.Equal(t, ids(h), ids(Merge(h, nil)))

		// idempotence
		once := Merge(h, m1)
		assert.Equal(t, ids(once), ids(Merge(once, m1)))

		// associativity while under the cap
		left := Merge(Merge(h, m1), m2)
		right := Merge(h, append(append([]core.Movie{}, m1...), m2...))
		assert.Equal(t, ids(right), ids(left))

		// uniqueness and bound
		seen := map[int64]bool{}
		for _, m := range left {
			assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
			seen[m.ID] = true
		}
		assert.LessOrEqual(t, len(left), core.MaxSearchedMovies)
	}
}

func TestMergeCap(t *testing.T) {
	got := MergeCap(movies(1, 2, 3), movies(4, 5), 3)
	assert.Equal(t, []int64{3, 4, 5}, ids(got))

	unbounded := MergeCap(movies(1, 2, 3), movies(4, 5), 0)
	assert.Len(t, unbounded, 5)
}

func TestReconcile(t *testing.T) {
	old, err := core.NewState("projects/p/sessions/1", map[string]any{
		"provider": "netflix",
	})
	require.NoError(t, err)

	h := core.SessionHistory(movies(27205))
	updated, err := Reconcile(old, h)
	require.NoError(t, err)

	got, err := updated.SearchedMovies()
	require.NoError(t, err)
	assert.Equal(t, []int64{27205}, ids(got))
	assert.Equal(t, "netflix", updated.StringParam(core.ParamProvider))
	assert.Equal(t, old.Session, updated.Session)

	_, present := old.Param(core.ParamSearchedMovies)
	assert.False(t, present, "original state must stay untouched")
}

func TestReconcile_NilHistoryEncodesEmptyList(t *testing.T) {
	updated, err := Reconcile(core.ConversationState{}, nil)
	require.NoError(t, err)

	raw, ok := updated.Param(core.ParamSearchedMovies)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))
}
