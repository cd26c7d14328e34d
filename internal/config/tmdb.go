package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/cinebot/pkg/log"
)

type TMDBConfig struct {
	APIKey   string        `env:"TMDB_API_KEY,required,notEmpty"`
	BaseURL  string        `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	Language string        `env:"TMDB_LANGUAGE" envDefault:"en-US"`
	Region   string        `env:"TMDB_WATCH_REGION" envDefault:"US"`
	Timeout  time.Duration `env:"TMDB_TIMEOUT" envDefault:"5s"`
	Retries  int           `env:"TMDB_RETRIES" envDefault:"2"`
	CacheTTL time.Duration `env:"TMDB_CACHE_TTL" envDefault:"6h"`
}

func NewTMDBConfig(ctx context.Context) *TMDBConfig {
	c := &TMDBConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse TMDB config")
	}
	return c
}
