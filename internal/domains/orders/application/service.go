package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

// Service runs checkout and order access. Checkout validates the cart and
// prices every line before its first write; the order and its items are then
// stored in a single repository call.
type Service struct {
	repo        ports.Repository
	prices      ports.PriceLookup
	directory   ports.IdentityDirectory
	events      ports.EventPublisher
	idempotency ports.IdempotencyStore
	replayWait  time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

const (
	defaultReplayWait  = 5 * time.Second
	replayPollInterval = 20 * time.Millisecond
)

type Option func(*Service)

func WithEventPublisher(events ports.EventPublisher) Option {
	return func(s *Service) {
		if events != nil {
			s.events = events
		}
	}
}

// WithIdempotencyStore enables Idempotency-Key handling on checkout.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// WithReplayWait bounds how long a retry waits for a checkout that holds the
// same idempotency key before giving up with ErrCheckoutInProgress.
func WithReplayWait(wait time.Duration) Option {
	return func(s *Service) {
		if wait > 0 {
			s.replayWait = wait
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, prices ports.PriceLookup, directory ports.IdentityDirectory, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		prices:     prices,
		directory:  directory,
		events:     ports.NoopPublisher{},
		replayWait: defaultReplayWait,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GuestCheckout places a Confirmed order for an unauthenticated buyer. The
// guest identity is resolved only after the whole cart is priced, so a
// rejected cart never creates an identity.
func (s *Service) GuestCheckout(ctx context.Context, input ports.GuestCheckoutInput) (*ports.CheckoutResult, error) {
	if err := domain.ValidateCart(input.Lines); err != nil {
		return nil, mapError(err)
	}
	if strings.TrimSpace(input.Contact.Email) == "" {
		return nil, mapError(fmt.Errorf("%w: email is required", ports.ErrInvalidContact))
	}

	var key, hash string
	if input.IdempotencyKey != "" && s.idempotency != nil {
		var err error
		key = guestScopedKey(input)
		if hash, err = FingerprintGuestCheckout(input); err != nil {
			return nil, err
		}
	}

	return s.once(ctx, key, hash, func() (*ports.CheckoutResult, error) {
		priced, err := s.priceLines(ctx, input.Lines)
		if err != nil {
			return nil, err
		}
		owner, err := s.directory.ResolveGuest(ctx, input.Contact)
		if err != nil {
			return nil, mapError(err)
		}
		return s.place(ctx, owner.ID, domain.StatusConfirmed, domain.ChannelGuest, priced, key)
	})
}

// MemberCheckout places a PENDING order for the authenticated caller.
func (s *Service) MemberCheckout(ctx context.Context, input ports.MemberCheckoutInput) (*ports.CheckoutResult, error) {
	if err := domain.ValidateCart(input.Lines); err != nil {
		return nil, mapError(err)
	}
	if input.MemberID <= 0 {
		return nil, mapError(ports.ErrOwnerNotFound)
	}

	var key, hash string
	if input.IdempotencyKey != "" && s.idempotency != nil {
		var err error
		key = memberScopedKey(input)
		if hash, err = FingerprintMemberCheckout(input); err != nil {
			return nil, err
		}
	}

	return s.once(ctx, key, hash, func() (*ports.CheckoutResult, error) {
		owner, err := s.directory.Member(ctx, input.MemberID)
		if err != nil {
			return nil, mapError(err)
		}
		priced, err := s.priceLines(ctx, input.Lines)
		if err != nil {
			return nil, err
		}
		return s.place(ctx, owner.ID, domain.StatusPending, domain.ChannelMember, priced, key)
	})
}

// GetSummary returns the caller's order without items.
func (s *Service) GetSummary(ctx context.Context, orderID, callerID int64) (*domain.Order, error) {
	if orderID <= 0 || callerID <= 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.repo.FindOwned(ctx, orderID, callerID)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// GetDetail returns the caller's order with its items.
func (s *Service) GetDetail(ctx context.Context, orderID, callerID int64) (*domain.Order, error) {
	if orderID <= 0 || callerID <= 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.repo.FindOwnedWithItems(ctx, orderID, callerID)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListOrders is a staff view across all owners.
func (s *Service) ListOrders(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx, statuses)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// UpdateStatus is a staff operation; ownership is not checked.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status domain.Status) (*domain.Order, error) {
	if orderID <= 0 {
		return nil, ErrOrderNotFound
	}
	current, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := current.UpdateStatus(status); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.repo.UpdateStatus(ctx, orderID, current.Status)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// priceLines resolves every line in one lookup. The first unknown product in
// cart order is reported.
func (s *Service) priceLines(ctx context.Context, lines []domain.CartLine) ([]domain.PricedLine, error) {
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.prices.Prices(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup prices: %w", err)
	}
	priced := make([]domain.PricedLine, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}
		priced = append(priced, domain.PricedLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.UnitPrice,
		})
	}
	return priced, nil
}

func (s *Service) place(ctx context.Context, ownerID int64, status domain.Status, channel domain.Channel, priced []domain.PricedLine, key string) (*ports.CheckoutResult, error) {
	order, err := domain.PlaceOrder(ownerID, status, priced, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}

	if key != "" {
		if err := s.idempotency.Complete(ctx, key, created.OwnerID, created.ID); err != nil {
			// The order is committed; the reservation expires after ports.ReservationTTL.
			s.logger.WarnContext(ctx, "failed to record idempotency key",
				slog.Int64("order.id", created.ID),
				slog.String("error", err.Error()))
		}
	}

	if err := s.events.PublishOrderPlaced(ctx, domain.NewOrderPlaced(created, channel)); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order placed event",
			slog.Int64("order.id", created.ID),
			slog.String("error", err.Error()))
	}
	return &ports.CheckoutResult{Order: created}, nil
}

// once runs checkout at most once per idempotency key. The key is reserved
// before any write; a concurrent request with the same key waits for the
// holder and replays its order, and a failed checkout releases the key.
func (s *Service) once(ctx context.Context, key, hash string, checkout func() (*ports.CheckoutResult, error)) (*ports.CheckoutResult, error) {
	if key == "" {
		return checkout()
	}
	replay, err := s.claim(ctx, key, hash)
	if err != nil || replay != nil {
		return replay, err
	}
	result, err := checkout()
	if err != nil {
		if releaseErr := s.idempotency.Release(context.WithoutCancel(ctx), key); releaseErr != nil {
			s.logger.WarnContext(ctx, "failed to release idempotency key",
				slog.String("error", releaseErr.Error()))
		}
		return nil, err
	}
	return result, nil
}

// claim returns nil when the caller now holds the key, or the replayed
// result when another request already completed it.
func (s *Service) claim(ctx context.Context, key, hash string) (*ports.CheckoutResult, error) {
	deadline := time.NewTimer(s.replayWait)
	defer deadline.Stop()
	poll := time.NewTicker(replayPollInterval)
	defer poll.Stop()

	for {
		record, reserved, err := s.idempotency.Reserve(ctx, key, hash)
		if err != nil {
			return nil, err
		}
		if reserved {
			return nil, nil
		}
		if record.RequestHash != hash {
			return nil, ErrIdempotencyConflict
		}
		if !record.Pending() {
			return s.replay(ctx, record)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, ErrCheckoutInProgress
		case <-poll.C:
		}
	}
}

func (s *Service) replay(ctx context.Context, record *ports.IdempotencyRecord) (*ports.CheckoutResult, error) {
	order, err := s.repo.FindOwnedWithItems(ctx, record.OrderID, record.OwnerID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("idempotency key references missing order %d", record.OrderID)
		}
		return nil, err
	}
	return &ports.CheckoutResult{Order: order, Replayed: true}, nil
}

var _ ports.Service = (*Service)(nil)
