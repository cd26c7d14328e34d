package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/test"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestResolve_CacheHitMakesNoCalls(t *testing.T) {
	catalog := &test.FakeCatalog{}
	r := New(catalog)
	h := core.SessionHistory{{ID: 1, Title: "Heat"}, test.Inception}

	res, err := r.Resolve(context.Background(), "  inCEPtion ", 0, h, StrategyAsk)
	require.NoError(t, err)

	resolved, ok := res.(Resolved)
	require.True(t, ok)
	assert.True(t, resolved.FromCache)
	assert.Equal(t, test.Inception, resolved.Movie)
	assert.Zero(t, catalog.TotalCalls())
}

func TestResolve_Search(t *testing.T) {
	dune1984 := core.Movie{ID: 841, Title: "Dune", ReleaseDate: "1984-12-14", Popularity: 20}
	dune2021 := core.Movie{ID: 438631, Title: "Dune", ReleaseDate: "2021-09-15", Popularity: 150}

	tests := []struct {
		name      string
		results   []core.Movie
		strategy  Strategy
		wantKind  core.Kind
		wantMovie core.Movie
		wantCands int
	}{
		{
			name:     "no results",
			results:  nil,
			wantKind: core.KindNotFound,
		},
		{
			name:      "single result",
			results:   []core.Movie{test.Inception},
			wantMovie: test.Inception,
		},
		{
			name:      "many results ask",
			results:   []core.Movie{dune1984, dune2021},
			strategy:  StrategyAsk,
			wantCands: 2,
		},
		{
			name:      "many results most popular",
			results:   []core.Movie{dune1984, dune2021},
			strategy:  StrategyMostPopular,
			wantMovie: dune2021,
		},
		{
			name: "candidates capped",
			results: []core.Movie{
				{ID: 1, Title: "A"}, {ID: 2, Title: "A"}, {ID: 3, Title: "A"},
				{ID: 4, Title: "A"}, {ID: 5, Title: "A"}, {ID: 6, Title: "A"}, {ID: 7, Title: "A"},
			},
			wantCands: MaxCandidates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &test.FakeCatalog{SearchResult: tt.results}
			r := New(catalog)

			res, err := r.Resolve(context.Background(), "Dune", 2021, nil, tt.strategy)
			assert.Equal(t, 1, catalog.Calls("search"))
			assert.Equal(t, "Dune", catalog.LastTitle)
			assert.Equal(t, 2021, catalog.LastYear)

			if tt.wantKind != core.KindNone {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, core.KindOf(err))
				return
			}
			require.NoError(t, err)

			if tt.wantCands > 0 {
				amb, ok := res.(Ambiguous)
				require.True(t, ok, "expected Ambiguous, got %T", res)
				assert.Len(t, amb.Candidates, tt.wantCands)
				assert.Equal(t, tt.results[0], amb.Candidates[0])
				return
			}

			resolved, ok := res.(Resolved)
			require.True(t, ok, "expected Resolved, got %T", res)
			assert.False(t, resolved.FromCache)
			assert.Equal(t, tt.wantMovie, resolved.Movie)
		})
	}
}

func TestResolve_DoesNotTouchHistory(t *testing.T) {
	catalog := &test.FakeCatalog{SearchResult: []core.Movie{test.Inception}}
	h := core.SessionHistory{{ID: 1, Title: "Heat"}}

	_, err := New(catalog).Resolve(context.Background(), "Inception", 0, h, StrategyAsk)
	require.NoError(t, err)
	assert.Equal(t, core.SessionHistory{{ID: 1, Title: "Heat"}}, h)
}

func TestResolve_MissingTitle(t *testing.T) {
	catalog := &test.FakeCatalog{}
	_, err := New(catalog).Resolve(context.Background(), "   ", 0, nil, StrategyAsk)
	require.Error(t, err)
	assert.Equal(t, core.KindMissingRequiredParameter, core.KindOf(err))
	assert.Zero(t, catalog.TotalCalls())
}

func TestResolve_UpstreamFailure(t *testing.T) {
	catalog := &test.FakeCatalog{SearchErr: errors.New("connection refused")}
	_, err := New(catalog).Resolve(context.Background(), "Inception", 0, nil, StrategyAsk)
	require.Error(t, err)
	assert.Equal(t, core.KindUpstreamUnavailable, core.KindOf(err))
}

func TestEnrich(t *testing.T) {
	details := map[int64]core.MovieDetail{
		test.Inception.ID: {
			Movie:  core.Movie{ID: test.Inception.ID, Title: "Inception", ReleaseDate: "2010-07-15"},
			Genres: []core.GenreInfo{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		},
	}
	credits := map[int64][]core.CastMember{
		test.Inception.ID: {
			{Name: "Leonardo DiCaprio", Popularity: 30},
			{Name: "Joseph Gordon-Levitt", Popularity: 12},
			{Name: "Elliot Page", Popularity: 18},
			{Name: "Tom Hardy", Popularity: 25},
			{Name: "Ken Watanabe", Popularity: 9},
		},
	}

	t.Run("both succeed", func(t *testing.T) {
		catalog := &test.FakeCatalog{DetailsResult: details, CreditsResult: credits}
		got := New(catalog).Enrich(context.Background(), test.Inception)

		assert.Equal(t, details[test.Inception.ID].Genres, got.Genres)
		require.Len(t, got.Cast, MaxCast)
		assert.Equal(t, []string{"Leonardo DiCaprio", "Tom Hardy", "Elliot Page"},
			[]string{got.Cast[0].Name, got.Cast[1].Name, got.Cast[2].Name})
		assert.Equal(t, test.Inception.Overview, got.Overview, "list fields fill gaps in details")
		assert.Equal(t, 1, catalog.Calls("details"))
		assert.Equal(t, 1, catalog.Calls("credits"))
	})

	t.Run("details fail", func(t *testing.T) {
		catalog := &test.FakeCatalog{DetailsErr: errors.New("boom"), CreditsResult: credits}
		got := New(catalog).Enrich(context.Background(), test.Inception)

		assert.Empty(t, got.Genres)
		assert.Len(t, got.Cast, MaxCast)
		assert.Equal(t, test.Inception, got.Movie)
	})

	t.Run("credits fail", func(t *testing.T) {
		catalog := &test.FakeCatalog{DetailsResult: details, CreditsErr: errors.New("boom")}
		got := New(catalog).Enrich(context.Background(), test.Inception)

		assert.Len(t, got.Genres, 2)
		assert.Empty(t, got.Cast)
	})

	t.Run("both fail", func(t *testing.T) {
		catalog := &test.FakeCatalog{DetailsErr: errors.New("a"), CreditsErr: errors.New("b")}
		got := New(catalog).Enrich(context.Background(), test.Inception)

		assert.Equal(t, core.MovieDetail{Movie: test.Inception}, got)
	})
}

func TestTopCast(t *testing.T) {
	cast := []core.CastMember{
		{Name: "a", Popularity: 1},
		{Name: "b", Popularity: 5},
		{Name: "c", Popularity: 5},
	}
	got := TopCast(cast, 2)
	assert.Equal(t, []core.CastMember{{Name: "b", Popularity: 5}, {Name: "c", Popularity: 5}}, got)
	assert.Equal(t, "a", cast[0].Name, "input is not reordered")
	assert.Empty(t, TopCast(nil, 3))
}

func TestMostPopular(t *testing.T) {
	movies := []core.Movie{{ID: 1, Popularity: 3}, {ID: 2, Popularity: 9}, {ID: 3, Popularity: 9}}
	assert.Equal(t, int64(2), MostPopular(movies).ID)
}
