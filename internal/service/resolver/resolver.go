// Package resolver turns a spoken movie title into a single catalog record.
package resolver

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/internal/metrics"
	"github.com/sandevgo/cinebot/pkg/log"
)

const (
	MaxCandidates = 5
	MaxCast       = 3
)

// Strategy decides what happens when a search returns more than one match.
type Strategy int

const (
	// StrategyAsk returns Ambiguous so the user can pick.
	StrategyAsk Strategy = iota
	// StrategyMostPopular picks the highest-popularity match.
	StrategyMostPopular
)

// Resolution is either Resolved or Ambiguous. Not-found is an error.
type Resolution interface {
	resolution()
}

type Resolved struct {
	Movie     core.Movie
	FromCache bool
}

type Ambiguous struct {
	Candidates []core.Movie
}

func (Resolved) resolution()  {}
func (Ambiguous) resolution() {}

type Resolver struct {
	catalog core.Catalog
}

func New(catalog core.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve looks title up in h first and only searches the catalog on a miss.
// h is never modified; merging a network result is left to the caller.
func (r *Resolver) Resolve(ctx context.Context, title string, year int, h core.SessionHistory, strategy Strategy) (Resolution, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, core.NewError(core.KindMissingRequiredParameter, core.ParamMovie, "")
	}

	if m, ok := h.FindTitle(title); ok {
		metrics.Resolution("cache")
		log.FromCtx(ctx).Debug().Int64("id", m.ID).Str("title", title).Msg("movie resolved from history")
		return Resolved{Movie: m, FromCache: true}, nil
	}

	matches, err := r.catalog.Search(ctx, title, year)
	if err != nil {
		return nil, err
	}

	switch {
	case len(matches) == 0:
		metrics.Resolution("not_found")
		return nil, core.NewError(core.KindNotFound, core.ParamMovie, title)
	case len(matches) == 1:
		metrics.Resolution("search")
		return Resolved{Movie: matches[0]}, nil
	case strategy == StrategyMostPopular:
		metrics.Resolution("search")
		return Resolved{Movie: MostPopular(matches)}, nil
	}

	metrics.Resolution("ambiguous")
	n := min(len(matches), MaxCandidates)
	return Ambiguous{Candidates: slices.Clone(matches[:n])}, nil
}

// MostPopular returns the first movie with the highest popularity.
func MostPopular(movies []core.Movie) core.Movie {
	best := movies[0]
	for _, m := range movies[1:] {
		if m.Popularity > best.Popularity {
			best = m
		}
	}
	return best
}

// Enrich fetches genres and cast in parallel. Either lookup may fail on its
// own; the field is then left empty and the movie is still returned.
func (r *Resolver) Enrich(ctx context.Context, m core.Movie) core.MovieDetail {
	logger := log.FromCtx(ctx)

	var (
		detail core.MovieDetail
		cast   []core.CastMember
		g      errgroup.Group
	)

	g.Go(func() error {
		d, err := r.catalog.Details(ctx, m.ID)
		if err != nil {
			logger.Warn().Err(err).Int64("id", m.ID).Str("kind", core.KindEnrichmentUnavailable.String()).Msg("movie details unavailable")
			return nil
		}
		detail = d
		return nil
	})

	g.Go(func() error {
		c, err := r.catalog.Credits(ctx, m.ID)
		if err != nil {
			logger.Warn().Err(err).Int64("id", m.ID).Str("kind", core.KindEnrichmentUnavailable.String()).Msg("movie credits unavailable")
			return nil
		}
		cast = c
		return nil
	})

	_ = g.Wait()

	out := core.MovieDetail{Movie: m, Genres: detail.Genres}
	if detail.ID == m.ID {
		out.Movie = fillMissing(detail.Movie, m)
	}
	out.Cast = TopCast(cast, MaxCast)
	return out
}

// TopCast returns the n most popular members, ties keeping billing order.
func TopCast(cast []core.CastMember, n int) []core.CastMember {
	sorted := slices.Clone(cast)
	slices.SortStableFunc(sorted, func(a, b core.CastMember) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// fillMissing prefers the details record and falls back to the list record
// for fields the details call left empty.
func fillMissing(d, m core.Movie) core.Movie {
	if d.Title == "" {
		d.Title = m.Title
	}
	if d.ReleaseDate == "" {
		d.ReleaseDate = m.ReleaseDate
	}
	if d.VoteAverage == 0 {
		d.VoteAverage = m.VoteAverage
	}
	if d.Overview == "" {
		d.Overview = m.Overview
	}
	if d.PosterPath == "" {
		d.PosterPath = m.PosterPath
	}
	if len(d.GenreIDs) == 0 {
		d.GenreIDs = m.GenreIDs
	}
	if d.Popularity == 0 {
		d.Popularity = m.Popularity
	}
	return d
}
