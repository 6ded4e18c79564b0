// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the shared logger. Init replaces it.
var Logger = log.Logger

// Config controls level, output format and caller reporting
type Config struct {
	Level        string `json:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string `json:"format" yaml:"format"`               // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`     // defaults to RFC3339
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"` // add file:line to each event
}

// Init builds the logger from config and installs it as both Logger and the zerolog global.
func Init(config Config) {
	InitWithWriter(config, os.Stdout)
}

// InitWithWriter is Init with an explicit destination
func InitWithWriter(config Config, out io.Writer) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	output := out
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: config.TimeFormat,
		}
	}

	builder := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		builder = builder.Caller()
	}

	Logger = builder.Logger()
	log.Logger = Logger
}

// Debug starts a debug-level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info starts an info-level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn starts a warn-level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts an error-level event
func Error() *zerolog.Event {
	return Logger.Error()
}

// Ctx returns the logger stored in ctx, falling back to Logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &Logger
}

// WithRequestID returns a context carrying a child logger tagged with id
func WithRequestID(ctx context.Context, id string) context.Context {
	l := Logger.With().Str("request_id", id).Logger()
	return l.WithContext(ctx)
}
