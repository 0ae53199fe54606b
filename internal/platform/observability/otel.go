package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// Settings identifies the process and selects where logs and spans go.
type Settings struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	LogLevel       slog.Level

	// OTLPEndpoint enables the OTLP/HTTP span exporter when set.
	OTLPEndpoint string
	OTLPInsecure bool
	// TraceStdout writes spans to Output when no OTLP endpoint is configured.
	TraceStdout bool

	// Output receives JSON logs; nil means stdout.
	Output io.Writer
}

// SettingsFromEnv fills Settings from LOG_LEVEL, SERVICE_VERSION,
// OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE and OTEL_TRACES_STDOUT.
func SettingsFromEnv(serviceName, environment string) Settings {
	return Settings{
		ServiceName:    serviceName,
		ServiceVersion: envOrDefault("SERVICE_VERSION", "dev"),
		Environment:    environment,
		LogLevel:       ParseLevel(os.Getenv("LOG_LEVEL")),
		OTLPEndpoint:   strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:   os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0",
		TraceStdout:    strings.EqualFold(strings.TrimSpace(os.Getenv("OTEL_TRACES_STDOUT")), "true"),
	}
}

// Instruments bundles the runtime-wide observability dependencies.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	Resource       *resource.Resource
}

// Init installs the JSON logger, tracer provider, meter provider and W3C
// propagators as process globals. The returned shutdown flushes pending spans.
func Init(ctx context.Context, settings Settings) (*Instruments, func(context.Context) error, error) {
	if settings.ServiceName == "" {
		return nil, nil, errors.New("observability: service name is required")
	}
	if settings.Output == nil {
		settings.Output = os.Stdout
	}
	logger := newLogger(settings)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(settings.ServiceName),
			semconv.ServiceVersionKey.String(settings.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(settings.Environment),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	spanExporter, err := newSpanExporter(ctx, settings)
	if err != nil {
		return nil, nil, err
	}
	tracerOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if spanExporter != nil {
		tracerOpts = append(tracerOpts, sdktrace.WithBatcher(spanExporter))
	} else {
		logger.Debug("no span exporter configured, spans are recorded but not exported")
	}
	tracerProvider := sdktrace.NewTracerProvider(tracerOpts...)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewManualReader()),
	)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}
	return &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		Resource:       res,
	}, shutdown, nil
}

// Tracer returns a named tracer from the configured provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter from the configured provider.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

// ParseLevel maps debug, info, warn, and error (any case) to slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger tags every record with the service and environment and installs
// the logger as the slog default.
func newLogger(settings Settings) *slog.Logger {
	handler := slog.NewJSONHandler(settings.Output, &slog.HandlerOptions{
		Level:     settings.LogLevel,
		AddSource: settings.LogLevel == slog.LevelDebug,
	})
	logger := slog.New(handler).With(
		slog.String("service", settings.ServiceName),
		slog.String("env", settings.Environment),
	)
	slog.SetDefault(logger)
	return logger
}

// newSpanExporter returns nil when neither OTLP nor stdout export is enabled.
func newSpanExporter(ctx context.Context, settings Settings) (sdktrace.SpanExporter, error) {
	switch {
	case settings.OTLPEndpoint != "":
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(settings.OTLPEndpoint)}
		if settings.OTLPInsecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	case settings.TraceStdout:
		return stdouttrace.New(stdouttrace.WithWriter(settings.Output))
	default:
		return nil, nil
	}
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
