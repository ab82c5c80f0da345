// Package logger builds the zerolog loggers shared by the engine, server and CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Output formats accepted by Config.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config selects the level, format and destination of a logger.
type Config struct {
	Level  string    `mapstructure:"level" yaml:"level"`
	Format string    `mapstructure:"format" yaml:"format"`
	Out    io.Writer `mapstructure:"-" yaml:"-"`
}

// DefaultConfig logs info and above to stderr in console format.
func DefaultConfig() Config {
	return Config{
		Level:  zerolog.LevelInfoValue,
		Format: FormatConsole,
	}
}

// New builds a timestamped zerolog.Logger tagged with app=oxy-folio.
//
// Parameters:
//   - cfg: level, format and destination; an empty level means info, a nil Out means stderr
//
// Returns:
//   - zerolog.Logger: the configured logger
//   - error: error if the level or format is not recognised
func New(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logger: parse level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(cfg.Format) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("logger: unknown format %q", cfg.Format)
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", "oxy-folio").
		Logger(), nil
}

// Component returns a child logger with the component field set.
//
// Parameters:
//   - log: the parent logger
//   - name: component name
//
// Returns:
//   - zerolog.Logger: the child logger
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
