// Package logs builds the process-wide slog logger from configuration.
package logs

import (
	"log/slog"
	"os"
	"strings"

	"vidtube/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the parameters required for the logger.
type Params struct {
	fx.In

	Config *config.Config
}

// New builds the logger. Output is JSON on stdout; the pretty flag swaps in
// the text handler for local development.
func New(params Params) (*slog.Logger, error) {
	level, err := parseLogLevel(params.Config.Env.Log.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if params.Config.Env.Log.Pretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler), nil
}

// parseLogLevel maps the configured level name to a slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
