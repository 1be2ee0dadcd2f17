// Package logger builds the application's slog.Logger: JSON output for
// production log aggregation, human-readable text elsewhere. Services receive
// the logger by reference and must never log plaintext passwords, password
// hashes, TOTP secrets, or submitted codes.
package logger

import (
	"log/slog"
	"os"
)

// Environment names recognised by New. Anything else is treated as development.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"` // Environment selects output format and level.
	ServiceName string `env:"APP_NAME" envDefault:"authsvc"`    // ServiceName is attached to every record.
}

// New creates a configured slog.Logger. Production gets JSON at info level;
// development gets text at debug level.
func New(cfg Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.Environment {
	case EnvProduction, "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)
}
