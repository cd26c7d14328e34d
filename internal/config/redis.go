package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/cinebot/pkg/log"
)

type RedisConfig struct {
	Addr     string `env:"CINE_REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"CINE_REDIS_PASSWORD"`
	DB       int    `env:"CINE_REDIS_DB" envDefault:"0"`
}

func NewRedisConfig(ctx context.Context) *RedisConfig {
	c := &RedisConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Redis config")
	}
	return c
}
