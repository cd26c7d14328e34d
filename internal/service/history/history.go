// Package history reconciles the per-session movie history.
package history

import (
	"github.com/sandevgo/cinebot/internal/core"
)

// Merge appends the movies not yet in h, keeping order, and evicts the oldest
// entries beyond core.MaxSearchedMovies. Neither argument is modified.
func Merge(h core.SessionHistory, movies []core.Movie) core.SessionHistory {
	return MergeCap(h, movies, core.MaxSearchedMovies)
}

// MergeCap is Merge with an explicit cap. A non-positive cap disables trimming.
func MergeCap(h core.SessionHistory, movies []core.Movie, limit int) core.SessionHistory {
	seen := make(map[int64]struct{}, len(h)+len(movies))
	out := make(core.SessionHistory, 0, len(h)+len(movies))

	for _, m := range h {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	for _, m := range movies {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Reconcile returns a copy of state whose searchedMovies is h.
func Reconcile(state core.ConversationState, h core.SessionHistory) (core.ConversationState, error) {
	if h == nil {
		h = core.SessionHistory{}
	}
	return state.WithParam(core.ParamSearchedMovies, h)
}
