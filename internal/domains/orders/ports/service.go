package ports

import (
	"context"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
)

// GuestContact identifies an anonymous buyer.
type GuestContact struct {
	Email     string
	FirstName string
	LastName  string
}

type GuestCheckoutInput struct {
	Contact        GuestContact
	Lines          []domain.CartLine
	IdempotencyKey string
}

type MemberCheckoutInput struct {
	MemberID       int64
	Lines          []domain.CartLine
	IdempotencyKey string
}

// CheckoutResult is the persisted order. Replayed is set when an idempotency
// key matched an earlier identical checkout.
type CheckoutResult struct {
	Order    *domain.Order
	Replayed bool
}

// Service exposes checkout, owner-scoped reads, and staff order operations.
type Service interface {
	GuestCheckout(ctx context.Context, input GuestCheckoutInput) (*CheckoutResult, error)
	MemberCheckout(ctx context.Context, input MemberCheckoutInput) (*CheckoutResult, error)
	GetSummary(ctx context.Context, orderID, callerID int64) (*domain.Order, error)
	GetDetail(ctx context.Context, orderID, callerID int64) (*domain.Order, error)
	ListOrders(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.Status) (*domain.Order, error)
}
