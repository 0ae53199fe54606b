// Package temporal dials the Temporal cluster with tracing and structured logging.
package temporal

import (
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	temporallog "go.temporal.io/sdk/log"
)

// Config selects the cluster. Empty fields fall back to the SDK defaults.
type Config struct {
	Address   string
	Namespace string
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = client.DefaultHostPort
	}
	if strings.TrimSpace(c.Namespace) == "" {
		c.Namespace = client.DefaultNamespace
	}
	return c
}

// Dial connects to Temporal. tracer may be nil.
func Dial(cfg Config, logger *slog.Logger, tracer trace.Tracer) (client.Client, error) {
	cfg = cfg.withDefaults()
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
	}
	if logger != nil {
		options.Logger = temporallog.NewStructuredLogger(logger)
	}
	if tracer != nil {
		interceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
		if err != nil {
			return nil, err
		}
		options.Interceptors = append(options.Interceptors, interceptor)
	}
	return client.Dial(options)
}
