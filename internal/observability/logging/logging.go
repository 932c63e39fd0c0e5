package logging

import (
	"log/slog"
	"os"
)

// Environment names a deployment environment for log attribution.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module labels a log record with the emitting subsystem.
type Module string

// ServiceInfo identifies the running service in every log record.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// NewLogger builds the service-wide JSON logger with stable service
// attributes attached to every record.
func NewLogger(level slog.Level, info ServiceInfo, env Environment) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	attrs := []any{
		slog.String("service", info.Name),
		slog.String("env", string(env)),
	}
	if info.Version != "" {
		attrs = append(attrs, slog.String("version", info.Version))
	}
	if info.Revision != "" {
		attrs = append(attrs, slog.String("revision", info.Revision))
	}

	return slog.New(handler).With(attrs...)
}
