package core

import "context"

// Catalog is the external movie catalog. Every failure is reported as a
// KindUpstreamUnavailable *Error.
type Catalog interface {
	Discover(ctx context.Context, f CanonicalFilter) ([]Movie, error)
	Search(ctx context.Context, title string, year int) ([]Movie, error)
	Details(ctx context.Context, id int64) (MovieDetail, error)
	Credits(ctx context.Context, id int64) ([]CastMember, error)
	Similar(ctx context.Context, id int64) ([]Movie, error)
}
