package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/cinebot/internal/config"
	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/internal/providers/tmdb"
	"github.com/sandevgo/cinebot/internal/service/command"
	"github.com/sandevgo/cinebot/internal/service/fulfillment"
	"github.com/sandevgo/cinebot/internal/service/normalize"
	"github.com/sandevgo/cinebot/internal/storage/cache"
	"github.com/sandevgo/cinebot/internal/storage/sqlite"
	"github.com/sandevgo/cinebot/internal/transport/telegram"
	"github.com/sandevgo/cinebot/internal/transport/webhook"
	"github.com/sandevgo/cinebot/pkg/log"
	"github.com/sandevgo/cinebot/pkg/srv"
)

func cineVersion() string {
	return core.CineVersion
}

// app holds the pieces shared by every entry point.
type app struct {
	cfg      *config.AppConfig
	handlers map[string]fulfillment.HandlerFunc
	db       *sql.DB
	sessions *sqlite.SessionRepo
	cache    cache.Cache
}

func (a *app) close() error {
	if err := a.cache.Close(); err != nil {
		return err
	}
	return a.db.Close()
}

func (a *app) turns() *command.TurnRunner {
	return command.NewTurnRunner(a.handlers, a.sessions)
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	a, err := newApp(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize")
	}
	services = append(services, srv.NewCleanup(a.close))

	// Stale chat sessions
	services = append(services, srv.NewTicker("purge-sessions", a.cfg.PurgeInterval, func(ctx context.Context) error {
		n, err := a.sessions.PurgeOlderThan(ctx, a.cfg.SessionTTL)
		if err == nil && n > 0 {
			log.FromCtx(ctx).Info().Int64("sessions", n).Msg("purged stale sessions")
		}
		return err
	}))

	if sw, ok := a.cache.(cache.Sweeper); ok {
		services = append(services, srv.NewTicker("sweep-cache", a.cfg.PurgeInterval, func(ctx context.Context) error {
			if n := sw.Sweep(ctx); n > 0 {
				log.FromCtx(ctx).Debug().Int("entries", n).Msg("swept expired cache entries")
			}
			return nil
		}))
	}

	transports, err := initTransports(ctx, a)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Warn().Msg("no front end enabled, set CINE_ENABLE_WEBHOOK or CINE_ENABLE_TELEGRAM")
	}
	services = append(services, transports...)

	return services
}

func newApp(ctx context.Context) (*app, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	tmdbCfg := config.NewTMDBConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ch, err := initCache(ctx, appCfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	// 3. Catalog
	catalog := tmdb.NewClient(tmdbCfg, tmdb.WithCache(ch, tmdbCfg.CacheTTL))

	// 4. Handlers
	fcfg, err := fulfillmentConfig(appCfg)
	if err != nil {
		ch.Close()
		db.Close()
		return nil, err
	}
	svc := fulfillment.New(catalog, fcfg)

	return &app{
		cfg:      appCfg,
		handlers: svc.Handlers(),
		db:       db,
		sessions: sqlite.NewSessionRepo(db),
		cache:    ch,
	}, nil
}

func fulfillmentConfig(cfg *config.AppConfig) (fulfillment.Config, error) {
	discover, err := normalize.ParsePolicy(cfg.DiscoverPolicy)
	if err != nil {
		return fulfillment.Config{}, fmt.Errorf("CINE_DISCOVER_POLICY: %w", err)
	}
	trending, err := normalize.ParsePolicy(cfg.TrendingPolicy)
	if err != nil {
		return fulfillment.Config{}, fmt.Errorf("CINE_TRENDING_POLICY: %w", err)
	}
	byProvider, err := normalize.ParsePolicy(cfg.ProviderTrendingPolicy)
	if err != nil {
		return fulfillment.Config{}, fmt.Errorf("CINE_PROVIDER_TRENDING_POLICY: %w", err)
	}

	return fulfillment.Config{
		DiscoverPolicy:         discover,
		TrendingPolicy:         trending,
		ProviderTrendingPolicy: byProvider,
		DefaultProvider:        cfg.DefaultProvider,
		MaxItems:               cfg.MaxItems,
		OverviewBudget:         cfg.OverviewBudget,
		HistoryCap:             cfg.HistoryCap,
	}, nil
}

func initCache(ctx context.Context, cfg *config.AppConfig) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case "memory", "":
		return cache.NewMemoryCache(), nil
	case "redis":
		rc, err := cache.NewRedisCache(ctx, config.NewRedisConfig(ctx))
		if err != nil {
			return nil, err
		}
		return rc, nil
	case "none":
		return cache.NewNop(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.CacheBackend)
	}
}

func initTransports(ctx context.Context, a *app) ([]srv.Service, error) {
	var services []srv.Service

	if a.cfg.EnableWebhook {
		services = append(services, webhook.NewServer(a.cfg, a.handlers))
	}

	if a.cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		turns := a.turns()
		bot, err := telegram.NewBot(ctx, tgCfg, command.NewRouter(turns), turns)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
