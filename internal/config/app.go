package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/cinebot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"CINE_RUNTIME_PATH" envDefault:".cinebot"`

	// Front ends
	EnableWebhook  bool   `env:"CINE_ENABLE_WEBHOOK" envDefault:"true"`
	EnableTelegram bool   `env:"CINE_ENABLE_TELEGRAM" envDefault:"false"`
	ListenAddr     string `env:"CINE_LISTEN_ADDR" envDefault:":8080"`

	// Unknown provider/genre handling per handler: "lenient" or "strict"
	DiscoverPolicy         string `env:"CINE_DISCOVER_POLICY" envDefault:"lenient"`
	TrendingPolicy         string `env:"CINE_TRENDING_POLICY" envDefault:"lenient"`
	ProviderTrendingPolicy string `env:"CINE_PROVIDER_TRENDING_POLICY" envDefault:"strict"`
	DefaultProvider        string `env:"CINE_DEFAULT_PROVIDER" envDefault:"netflix"`

	// Rendering
	MaxItems       int `env:"CINE_MAX_ITEMS" envDefault:"5"`
	OverviewBudget int `env:"CINE_OVERVIEW_BUDGET" envDefault:"85"`
	HistoryCap     int `env:"CINE_HISTORY_CAP" envDefault:"50"`

	// Webhook rate limit, requests per minute per client IP. Zero disables it.
	RateLimitPerMinute int `env:"CINE_RATE_LIMIT_PER_MINUTE" envDefault:"600"`

	// Chat sessions idle longer than SessionTTL are purged every PurgeInterval
	SessionTTL    time.Duration `env:"CINE_SESSION_TTL" envDefault:"720h"`
	PurgeInterval time.Duration `env:"CINE_PURGE_INTERVAL" envDefault:"1h"`

	// Enrichment cache backend: "memory", "redis" or "none"
	CacheBackend string `env:"CINE_CACHE_BACKEND" envDefault:"memory"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	if !filepath.IsAbs(c.RuntimePath) {
		c.RuntimePath = GetRuntimePath()
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "cinebot.db")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}
