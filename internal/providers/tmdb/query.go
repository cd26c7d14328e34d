package tmdb

import (
	"net/url"
	"strconv"

	"github.com/sandevgo/cinebot/internal/core"
)

// QueryDefaults are the fixed, non-user parts of a discover query.
type QueryDefaults struct {
	Language string
	Region   string
}

var Defaults = QueryDefaults{Language: "en-US", Region: "US"}

// DiscoverQuery maps f onto discover parameters using Defaults.
func DiscoverQuery(f core.CanonicalFilter) url.Values {
	return Defaults.Discover(f)
}

// Discover is pure: absent filter dimensions are omitted, never sent empty.
func (d QueryDefaults) Discover(f core.CanonicalFilter) url.Values {
	q := url.Values{}
	q.Set("include_adult", "false")
	q.Set("include_video", "false")
	q.Set("language", d.Language)
	q.Set("sort_by", "popularity.desc")
	q.Set("page", "1")
	q.Set("watch_region", d.Region)

	if f.Provider != core.ProviderNone {
		q.Set("with_watch_providers", strconv.Itoa(f.Provider.ID()))
	}
	if f.Genre != core.GenreNone {
		q.Set("with_genres", strconv.Itoa(f.Genre.ID()))
	}
	if f.Year != 0 {
		q.Set("primary_release_year", strconv.Itoa(f.Year))
	}
	return q
}

// SearchQuery builds a title search. A zero year is omitted.
func SearchQuery(title string, year int) url.Values {
	q := url.Values{}
	q.Set("query", title)
	if year != 0 {
		q.Set("primary_release_year", strconv.Itoa(year))
	}
	return q
}
