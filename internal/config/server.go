package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Empty DSN runs the server without persistence.
	PostgresDSN string `env:"POSTGRES_DSN"`

	TableID    string `env:"TABLE_ID" envDefault:"main"`
	TableName  string `env:"TABLE_NAME" envDefault:"Main Table"`
	SmallBlind int64  `env:"SMALL_BLIND" envDefault:"10"`
	BigBlind   int64  `env:"BIG_BLIND" envDefault:"20"`

	// Zero bounds disable the corresponding buy-in check.
	MinBuyIn int64 `env:"MIN_BUY_IN" envDefault:"400"`
	MaxBuyIn int64 `env:"MAX_BUY_IN" envDefault:"4000"`

	PacingMS int `env:"PACING_MS" envDefault:"500"`

	CommentaryURL     string        `env:"COMMENTARY_URL"`
	CommentaryTimeout time.Duration `env:"COMMENTARY_TIMEOUT" envDefault:"5s"`
}

func (c ServerConfig) Pacing() time.Duration {
	return time.Duration(c.PacingMS) * time.Millisecond
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
