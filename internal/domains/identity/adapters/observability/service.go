package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/cafe-api/internal/domains/identity/domain"
	"github.com/Apurer/cafe-api/internal/domains/identity/ports"
)

const tracerName = "github.com/Apurer/cafe-api/internal/domains/identity/adapters/observability/service"

// Service decorates the identity service with tracing, logging, and metrics.
// Emails and passwords are never logged.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core identity service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.Session, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Register")
	defer span.End()

	session, err := s.inner.Register(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "registration failed")
	}
	span.SetAttributes(attribute.Int64("identity.id", session.Identity.ID))
	s.metrics.recordRegistration(ctx)
	s.logInfo(ctx, "identity registered", slog.Int64("identity.id", session.Identity.ID))
	return session, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.Login")
	defer span.End()

	session, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, "rejected")
		return nil, s.handleError(ctx, span, err, "login failed")
	}
	span.SetAttributes(attribute.Int64("identity.id", session.Identity.ID))
	s.metrics.recordLogin(ctx, "accepted")
	s.logInfo(ctx, "identity logged in",
		slog.Int64("identity.id", session.Identity.ID),
		slog.String("identity.role", session.Identity.Role.String()))
	return session, nil
}

func (s *Service) ResolveGuest(ctx context.Context, contact ports.GuestContact) (*domain.Identity, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.ResolveGuest")
	defer span.End()

	identity, err := s.inner.ResolveGuest(ctx, contact)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resolve guest identity")
	}
	span.SetAttributes(attribute.Int64("identity.id", identity.ID))
	s.logInfo(ctx, "guest identity resolved",
		slog.Int64("identity.id", identity.ID),
		slog.String("identity.role", identity.Role.String()))
	return identity, nil
}

func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Identity, error) {
	ctx, span := s.tracer.Start(ctx, "IdentityService.FindByID", trace.WithAttributes(attribute.Int64("identity.id", id)))
	defer span.End()

	identity, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load identity", slog.Int64("identity.id", id))
	}
	return identity, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	registrations metric.Int64Counter
	logins        metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registrations, _ := m.Int64Counter("identity.registrations", metric.WithDescription("Number of member registrations"))
	logins, _ := m.Int64Counter("identity.logins", metric.WithDescription("Number of login attempts by outcome"))
	return serviceMetrics{registrations: registrations, logins: logins}
}

func (m serviceMetrics) recordRegistration(ctx context.Context) {
	if m.registrations != nil {
		m.registrations.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, outcome string) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

var _ ports.Service = (*Service)(nil)
