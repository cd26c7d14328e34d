package test

import (
	"context"
	"sync"

	"github.com/sandevgo/cinebot/internal/core"
)

// FakeCatalog is an in-memory core.Catalog that records every call.
// Err* fields, when set, are returned instead of the canned data.
type FakeCatalog struct {
	DiscoverResult []core.Movie
	SearchResult   []core.Movie
	SimilarResult  []core.Movie
	DetailsResult  map[int64]core.MovieDetail
	CreditsResult  map[int64][]core.CastMember

	DiscoverErr error
	SearchErr   error
	SimilarErr  error
	DetailsErr  error
	CreditsErr  error

	mu          sync.Mutex
	calls       map[string]int
	LastFilter  core.CanonicalFilter
	LastTitle   string
	LastYear    int
	LastMovieID int64
}

var _ core.Catalog = (*FakeCatalog)(nil)

func (f *FakeCatalog) record(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[endpoint]++
}

// Calls returns how often endpoint was hit.
func (f *FakeCatalog) Calls(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

// TotalCalls counts calls across all endpoints.
func (f *FakeCatalog) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *FakeCatalog) Discover(_ context.Context, filter core.CanonicalFilter) ([]core.Movie, error) {
	f.record("discover")
	f.mu.Lock()
	f.LastFilter = filter
	f.mu.Unlock()
	if f.DiscoverErr != nil {
		return nil, core.Upstream("discover", f.DiscoverErr)
	}
	return f.DiscoverResult, nil
}

func (f *FakeCatalog) Search(_ context.Context, title string, year int) ([]core.Movie, error) {
	f.record("search")
	f.mu.Lock()
	f.LastTitle, f.LastYear = title, year
	f.mu.Unlock()
	if f.SearchErr != nil {
		return nil, core.Upstream("search", f.SearchErr)
	}
	return f.SearchResult, nil
}

func (f *FakeCatalog) Details(_ context.Context, id int64) (core.MovieDetail, error) {
	f.record("details")
	if f.DetailsErr != nil {
		return core.MovieDetail{}, core.Upstream("details", f.DetailsErr)
	}
	return f.DetailsResult[id], nil
}

func (f *FakeCatalog) Credits(_ context.Context, id int64) ([]core.CastMember, error) {
	f.record("credits")
	if f.CreditsErr != nil {
		return nil, core.Upstream("credits", f.CreditsErr)
	}
	return f.CreditsResult[id], nil
}

func (f *FakeCatalog) Similar(_ context.Context, id int64) ([]core.Movie, error) {
	f.record("similar")
	f.mu.Lock()
	f.LastMovieID = id
	f.mu.Unlock()
	if f.SimilarErr != nil {
		return nil, core.Upstream("similar", f.SimilarErr)
	}
	return f.SimilarResult, nil
}

// Inception is the fixture used across handler tests.
var Inception = core.Movie{
	ID:          27205,
	Title:       "Inception",
	ReleaseDate: "2010-07-15",
	VoteAverage: 8.4,
	Overview:    "Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets is offered a chance to regain his old life.",
	PosterPath:  "/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg",
	GenreIDs:    []int{28, 878, 12},
	Popularity:  83.9,
}
