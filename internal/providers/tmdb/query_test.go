package tmdb

import (
	"net/url"
	"testing"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/stretchr/testify/assert"
)

func fixedDefaults() url.Values {
	return url.Values{
		"include_adult": {"false"},
		"include_video": {"false"},
		"language":      {"en-US"},
		"sort_by":       {"popularity.desc"},
		"page":          {"1"},
		"watch_region":  {"US"},
	}
}

func TestDiscoverQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter core.CanonicalFilter
		extra  map[string]string
	}{
		{
			name:   "netflix action 2020",
			filter: core.CanonicalFilter{Provider: core.ProviderNetflix, Genre: core.GenreAction, Year: 2020},
			extra: map[string]string{
				"with_watch_providers": "8",
				"with_genres":          "28",
				"primary_release_year": "2020",
			},
		},
		{
			name:   "empty filter has only defaults",
			filter: core.CanonicalFilter{},
		},
		{
			name:   "genre only",
			filter: core.CanonicalFilter{Genre: core.GenreScienceFiction},
			extra:  map[string]string{"with_genres": "878"},
		},
		{
			name:   "provider only",
			filter: core.CanonicalFilter{Provider: core.ProviderDisney},
			extra:  map[string]string{"with_watch_providers": "337"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := fixedDefaults()
			for k, v := range tt.extra {
				want.Set(k, v)
			}

			got := DiscoverQuery(tt.filter)

			assert.Equal(t, want, got)
			assert.Empty(t, got.Get("api_key"), "builder must not attach credentials")
		})
	}
}

func TestDiscoverQuery_Deterministic(t *testing.T) {
	f := core.CanonicalFilter{Provider: core.ProviderHulu, Genre: core.GenreHorror, Year: 1999}
	assert.Equal(t, DiscoverQuery(f).Encode(), DiscoverQuery(f).Encode())
}

func TestSearchQuery(t *testing.T) {
	assert.Equal(t, url.Values{"query": {"Inception"}}, SearchQuery("Inception", 0))
	assert.Equal(t,
		url.Values{"query": {"Dune"}, "primary_release_year": {"2021"}},
		SearchQuery("Dune", 2021),
	)
}
