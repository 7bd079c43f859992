package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"holdem-table/internal/config"
)

var writer io.Writer = os.Stdout

// Writer is the destination Init chose, for handing to other log frontends.
func Writer() io.Writer {
	return writer
}

// Init configures the global zerolog logger. When cfg.File is set, log lines
// go to a size-capped file instead of stdout.
func Init(cfg config.LogConfig) error {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	var output io.Writer = os.Stdout
	if cfg.File != "" {
		w, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB)
		if err != nil {
			return err
		}
		output = w
	}
	writer = output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
	return nil
}
