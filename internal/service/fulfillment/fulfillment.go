// Package fulfillment runs one conversational turn per handler: read the
// session bag, query the catalog, reconcile history and render the reply.
package fulfillment

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/internal/metrics"
	"github.com/sandevgo/cinebot/internal/service/history"
	"github.com/sandevgo/cinebot/internal/service/normalize"
	"github.com/sandevgo/cinebot/internal/service/render"
	"github.com/sandevgo/cinebot/internal/service/resolver"
	"github.com/sandevgo/cinebot/pkg/log"
)

// Outcome is the result of a turn. State is always a well-formed copy of the
// input state; Kind is KindNone on success.
type Outcome struct {
	Messages []core.Message
	State    core.ConversationState
	Kind     core.Kind
	// Rejected marks validation failures the host should receive as HTTP 400.
	Rejected bool
}

func (o Outcome) HTTPStatus() int {
	if o.Rejected {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

// HandlerFunc is the signature shared by all turn handlers.
type HandlerFunc func(ctx context.Context, state core.ConversationState) Outcome

type Config struct {
	DiscoverPolicy         normalize.Policy
	TrendingPolicy         normalize.Policy
	ProviderTrendingPolicy normalize.Policy
	DefaultProvider        string
	MaxItems               int
	OverviewBudget         int
	HistoryCap             int
	Now                    func() time.Time
}

type Service struct {
	catalog  core.Catalog
	resolver *resolver.Resolver
	renderer *render.Renderer

	discover   *normalize.Normalizer
	trending   *normalize.Normalizer
	byProvider *normalize.Normalizer

	defaultProvider string
	historyCap      int
}

func New(catalog core.Catalog, cfg Config) *Service {
	var opts []normalize.Option
	if cfg.Now != nil {
		opts = append(opts, normalize.WithClock(cfg.Now))
	}
	base := normalize.New(cfg.DiscoverPolicy, opts...)

	if cfg.HistoryCap == 0 {
		cfg.HistoryCap = core.MaxSearchedMovies
	}

	return &Service{
		catalog:         catalog,
		resolver:        resolver.New(catalog),
		renderer:        render.New(render.Options{MaxItems: cfg.MaxItems, OverviewBudget: cfg.OverviewBudget}),
		discover:        base,
		trending:        base.WithPolicy(cfg.TrendingPolicy),
		byProvider:      base.WithPolicy(cfg.ProviderTrendingPolicy),
		defaultProvider: cfg.DefaultProvider,
		historyCap:      cfg.HistoryCap,
	}
}

// Handlers maps handler names to their turn functions.
func (s *Service) Handlers() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		HandlerDiscover:         s.Discover,
		HandlerTrending:         s.Trending,
		HandlerTrendingProvider: s.TrendingByProvider,
		HandlerSynopsis:         s.Synopsis,
		HandlerSimilar:          s.Similar,
	}
}

// Discover lists popular movies for the optional provider/genre/year filter.
func (s *Service) Discover(ctx context.Context, state core.ConversationState) Outcome {
	return s.run(ctx, HandlerDiscover, state, func(ctx context.Context) Outcome {
		params := normalize.FromState(state)
		return s.discoverTurn(ctx, HandlerDiscover, state, s.discover, params, s.renderer, msgNoMovie)
	})
}

// Trending is Discover with genre-annotated cards dated by year.
func (s *Service) Trending(ctx context.Context, state core.ConversationState) Outcome {
	return s.run(ctx, HandlerTrending, state, func(ctx context.Context) Outcome {
		params := normalize.FromState(state)
		return s.discoverTurn(ctx, HandlerTrending, state, s.trending, params, s.renderer.WithStyle(render.StyleGenresYear), msgNoMovies)
	})
}

// TrendingByProvider always filters by a provider, falling back to the
// configured default when none was given.
func (s *Service) TrendingByProvider(ctx context.Context, state core.ConversationState) Outcome {
	return s.run(ctx, HandlerTrendingProvider, state, func(ctx context.Context) Outcome {
		params := normalize.FromState(state)
		if strings.TrimSpace(params.Provider) == "" {
			params.Provider = s.defaultProvider
		}
		out := s.discoverTurn(ctx, HandlerTrendingProvider, state, s.byProvider, params, s.renderer.WithStyle(render.StyleGenres), msgNoMovies)
		if out.Kind.IsValidation() && s.byProvider.Policy() == normalize.PolicyStrict {
			out.Rejected = true
		}
		return out
	})
}

func (s *Service) discoverTurn(
	ctx context.Context,
	handler string,
	state core.ConversationState,
	n *normalize.Normalizer,
	params normalize.Params,
	r *render.Renderer,
	noResults string,
) Outcome {
	filter, err := n.Normalize(params)
	if err != nil {
		return s.fail(handler, state, err, params.Provider)
	}

	h, err := state.SearchedMovies()
	if err != nil {
		return s.fail(handler, state, err, params.Provider)
	}

	log.FromCtx(ctx).Debug().
		Str("handler", handler).
		Str("provider", filter.Provider.String()).
		Str("genre", filter.Genre.String()).
		Int("year", filter.Year).
		Msg("discover")

	movies, err := s.catalog.Discover(ctx, filter)
	if err != nil {
		return s.fail(handler, state, err, params.Provider)
	}
	if len(movies) == 0 {
		return Outcome{Messages: []core.Message{core.TextMsg(noResults)}, State: state}
	}

	top := movies[:min(len(movies), r.MaxItems())]
	next, err := history.Reconcile(state, history.MergeCap(h, top, s.historyCap))
	if err != nil {
		return s.fail(handler, state, err, params.Provider)
	}

	return Outcome{
		Messages: []core.Message{core.PayloadMsg(r.Render(top))},
		State:    next,
	}
}

// Synopsis resolves one movie and renders its enriched detail card. Multiple
// matches are listed back to the user and kept in movieSearchResults.
func (s *Service) Synopsis(ctx context.Context, state core.ConversationState) Outcome {
	return s.run(ctx, HandlerSynopsis, state, func(ctx context.Context) Outcome {
		title := strings.TrimSpace(state.StringParam(core.ParamMovie))

		year, err := s.discover.Year(state.DatePeriodYear())
		if err != nil {
			return s.fail(HandlerSynopsis, state, err, title)
		}
		if title == "" {
			return s.fail(HandlerSynopsis, state, core.NewError(core.KindMissingRequiredParameter, core.ParamMovie, ""), title)
		}

		h, err := state.SearchedMovies()
		if err != nil {
			return s.fail(HandlerSynopsis, state, err, title)
		}

		movie, clearPending, res, err := s.resolvePending(ctx, state, title, year, h)
		if err != nil {
			return s.fail(HandlerSynopsis, state, err, title)
		}

		if amb, ok := res.(resolver.Ambiguous); ok {
			next, err := state.WithParam(core.ParamMovieSearchResults, amb.Candidates)
			if err != nil {
				return s.fail(HandlerSynopsis, state, err, title)
			}
			return Outcome{
				Messages: []core.Message{core.TextMsg(render.Candidates(title, amb.Candidates))},
				State:    next,
				Kind:     core.KindAmbiguous,
			}
		}

		detail := s.resolver.Enrich(ctx, movie)

		next, err := history.Reconcile(state, history.MergeCap(h, []core.Movie{movie}, s.historyCap))
		if err == nil && clearPending {
			next, err = next.WithParam(core.ParamMovieSearchResults, nil)
		}
		if err != nil {
			return s.fail(HandlerSynopsis, state, err, title)
		}

		return Outcome{
			Messages: []core.Message{core.PayloadMsg(s.renderer.Detail(detail))},
			State:    next,
		}
	})
}

// resolvePending answers a follow-up to an ambiguous turn from the stored
// candidates before falling back to the regular resolver. The bool reports
// whether stored candidates should be cleared.
func (s *Service) resolvePending(ctx context.Context, state core.ConversationState, title string, year int, h core.SessionHistory) (core.Movie, bool, resolver.Resolution, error) {
	pending, err := state.MovieSearchResults()
	if err != nil {
		return core.Movie{}, false, nil, err
	}
	if m, ok := pickCandidate(pending, title, year); ok {
		metrics.Resolution("pending")
		return m, true, nil, nil
	}

	res, err := s.resolver.Resolve(ctx, title, year, h, resolver.StrategyAsk)
	if err != nil {
		return core.Movie{}, false, nil, err
	}
	if r, ok := res.(resolver.Resolved); ok {
		return r.Movie, len(pending) > 0, res, nil
	}
	return core.Movie{}, false, res, nil
}

// pickCandidate matches title (and year, when given) against exactly one
// stored candidate.
func pickCandidate(cands []core.Movie, title string, year int) (core.Movie, bool) {
	var (
		found core.Movie
		n     int
	)
	for _, c := range cands {
		if !strings.EqualFold(c.Title, title) {
			continue
		}
		if year != 0 {
			if y, ok := c.Year(); !ok || y != year {
				continue
			}
		}
		found = c
		n++
	}
	return found, n == 1
}

// Similar resolves a title to its most popular match and lists movies like it.
func (s *Service) Similar(ctx context.Context, state core.ConversationState) Outcome {
	return s.run(ctx, HandlerSimilar, state, func(ctx context.Context) Outcome {
		title := strings.TrimSpace(state.StringParam(core.ParamMovie))
		if title == "" {
			return s.fail(HandlerSimilar, state, core.NewError(core.KindMissingRequiredParameter, core.ParamMovie, ""), title)
		}

		h, err := state.SearchedMovies()
		if err != nil {
			return s.fail(HandlerSimilar, state, err, title)
		}

		res, err := s.resolver.Resolve(ctx, title, 0, h, resolver.StrategyMostPopular)
		if err != nil {
			return s.fail(HandlerSimilar, state, err, title)
		}
		movie := res.(resolver.Resolved).Movie

		similar, err := s.catalog.Similar(ctx, movie.ID)
		if err != nil {
			return s.fail(HandlerSimilar, state, err, title)
		}
		if len(similar) == 0 {
			return Outcome{
				Messages: []core.Message{core.TextMsg(fmt.Sprintf(fmtNoSimilar, movie.Title))},
				State:    state,
			}
		}

		next, err := history.Reconcile(state, history.MergeCap(h, []core.Movie{movie}, s.historyCap))
		if err != nil {
			return s.fail(HandlerSimilar, state, err, title)
		}

		return Outcome{
			Messages: []core.Message{core.PayloadMsg(s.renderer.Render(similar))},
			State:    next,
		}
	})
}

func (s *Service) fail(handler string, state core.ConversationState, err error, subject string) Outcome {
	return Outcome{
		Messages: []core.Message{core.TextMsg(MessageFor(handler, err, subject))},
		State:    state,
		Kind:     core.KindOf(err),
	}
}

// run records the turn and converts a panic into the generic failure reply.
func (s *Service) run(ctx context.Context, handler string, state core.ConversationState, fn func(context.Context) Outcome) (out Outcome) {
	logger := log.FromCtx(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("handler", handler).Msg("turn panicked")
			out = s.fail(handler, state, fmt.Errorf("panic: %v", r), "")
		}

		kind := "ok"
		if out.Kind != core.KindNone {
			kind = out.Kind.String()
		}
		metrics.Turn(handler, kind)

		ev := logger.Info()
		if out.Kind == core.KindUpstreamUnavailable || out.Kind == core.KindMalformedRequest {
			ev = logger.Warn()
		}
		ev.Str("handler", handler).
			Str("session", state.Session).
			Str("kind", kind).
			Dur("took", time.Since(start)).
			Msg("turn finished")
	}()

	return fn(ctx)
}
