package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Service     string `env:"APP_NAME" envDefault:"htmx-playground"`
	Level       string `env:"LOG_LEVEL"`          // overrides the environment default when set
	File        string `env:"LOG_FILE"`           // rotating log file, stdout only when empty
	MaxSizeMB   int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups  int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays  int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
	CompressOld bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewFromConfig builds a logger from cfg. When cfg.File is set, records are
// written to stdout and to a size-rotated file; the returned closer releases
// the file and must be called on shutdown.
func NewFromConfig(cfg Config, opts ...Option) (*slog.Logger, io.Closer, error) {
	base := []Option{WithEnvironment(cfg.Env, cfg.Service)}

	if cfg.Level != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
		}
		base = append(base, WithLevel(level))
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.CompressOld,
		}
		base = append(base, WithOutput(io.MultiWriter(os.Stdout, rotator)))
		closer = rotator
	}

	return New(append(base, opts...)...), closer, nil
}
