package config

import "github.com/caarlos0/env/v11"

// LogConfig tunes the zerolog output. File switches logs from stdout to a
// size-capped file; SampleEvery > 1 keeps one line in N.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
	File        string `env:"LOG_FILE"`
	MaxMB       int    `env:"LOG_MAX_MB" envDefault:"10"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}
