package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/cafe-api/internal/domains/orders/application"
	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/cafe-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
// Guest contact details are never logged.
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

// New wraps the core orders service.
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

func (s *Service) GuestCheckout(ctx context.Context, input ports.GuestCheckoutInput) (*ports.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GuestCheckout", trace.WithAttributes(
		attribute.Int("cart.lines", len(input.Lines)),
		attribute.Bool("checkout.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	result, err := s.inner.GuestCheckout(ctx, input)
	if err != nil {
		s.metrics.recordFailed(ctx, domain.ChannelGuest)
		return nil, s.handleError(ctx, span, err, "guest checkout failed", slog.Int("cart.lines", len(input.Lines)))
	}
	s.recordPlaced(ctx, span, domain.ChannelGuest, result)
	return result, nil
}

func (s *Service) MemberCheckout(ctx context.Context, input ports.MemberCheckoutInput) (*ports.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.MemberCheckout", trace.WithAttributes(
		attribute.Int64("identity.id", input.MemberID),
		attribute.Int("cart.lines", len(input.Lines)),
		attribute.Bool("checkout.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	result, err := s.inner.MemberCheckout(ctx, input)
	if err != nil {
		s.metrics.recordFailed(ctx, domain.ChannelMember)
		return nil, s.handleError(ctx, span, err, "member checkout failed",
			slog.Int64("identity.id", input.MemberID),
			slog.Int("cart.lines", len(input.Lines)))
	}
	s.recordPlaced(ctx, span, domain.ChannelMember, result)
	return result, nil
}

func (s *Service) GetSummary(ctx context.Context, orderID, callerID int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetSummary", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	order, err := s.inner.GetSummary(ctx, orderID, callerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order",
			slog.Int64("order.id", orderID), slog.Int64("identity.id", callerID))
	}
	return order, nil
}

func (s *Service) GetDetail(ctx context.Context, orderID, callerID int64) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetDetail", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	order, err := s.inner.GetDetail(ctx, orderID, callerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order items",
			slog.Int64("order.id", orderID), slog.Int64("identity.id", callerID))
	}
	span.SetAttributes(attribute.Int("order.items", len(order.Items)))
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders")
	defer span.End()

	orders, err := s.inner.ListOrders(ctx, statuses)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status domain.Status) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", orderID),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	order, err := s.inner.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status",
			slog.Int64("order.id", orderID), slog.String("order.status", string(status)))
	}
	s.logInfo(ctx, "order status updated", slog.Int64("order.id", orderID), slog.String("order.status", string(order.Status)))
	return order, nil
}

func (s *Service) recordPlaced(ctx context.Context, span trace.Span, channel domain.Channel, result *ports.CheckoutResult) {
	order := result.Order
	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.String("order.status", string(order.Status)),
		attribute.Bool("checkout.replayed", result.Replayed),
	)
	if result.Replayed {
		s.logInfo(ctx, "checkout replayed", slog.Int64("order.id", order.ID), slog.String("checkout.channel", string(channel)))
		return
	}
	s.metrics.recordPlaced(ctx, channel, order.Status)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", order.ID),
		slog.Int64("identity.id", order.OwnerID),
		slog.String("checkout.channel", string(channel)),
		slog.String("order.total", order.TotalCost.StringFixed(2)),
		slog.Int("order.items", len(order.Items)))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// handleError logs client-class failures at warn and everything else at error.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		level := slog.LevelError
		if isClientError(err) {
			level = slog.LevelWarn
		}
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

func isClientError(err error) bool {
	return errors.Is(err, application.ErrInvalidInput) ||
		errors.Is(err, application.ErrProductNotFound) ||
		errors.Is(err, application.ErrOrderNotFound) ||
		errors.Is(err, application.ErrIdempotencyConflict) ||
		errors.Is(err, application.ErrInvalidTransition)
}

type serviceMetrics struct {
	placed metric.Int64Counter
	failed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.checkout.placed", metric.WithDescription("Number of orders placed"))
	failed, _ := m.Int64Counter("orders.checkout.failed", metric.WithDescription("Number of rejected or failed checkouts"))
	return serviceMetrics{placed: placed, failed: failed}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, channel domain.Channel, status domain.Status) {
	if m.placed != nil {
		m.placed.Add(ctx, 1, metric.WithAttributes(
			attribute.String("caller", string(channel)),
			attribute.String("status", string(status))))
	}
}

func (m serviceMetrics) recordFailed(ctx context.Context, channel domain.Channel) {
	if m.failed != nil {
		m.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("caller", string(channel))))
	}
}

var _ ports.Service = (*Service)(nil)
