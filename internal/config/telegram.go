package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/cinebot/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"CINE_TELEGRAM_TOKEN,required,notEmpty"`
	// Empty allows every chat.
	AllowedChats []int64 `env:"CINE_TELEGRAM_ALLOWED_CHATS" envSeparator:","`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}
