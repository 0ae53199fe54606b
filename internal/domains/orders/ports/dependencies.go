package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
)

var (
	// ErrOwnerNotFound is returned by IdentityDirectory when a member id has no identity.
	ErrOwnerNotFound = errors.New("owner identity not found")
	// ErrInvalidContact is returned by IdentityDirectory when guest contact details are unusable.
	ErrInvalidContact = errors.New("guest contact is invalid")
)

// PricedProduct is the catalog view checkout needs.
type PricedProduct struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
}

// PriceLookup resolves current prices. Unknown ids are absent from the result.
type PriceLookup interface {
	Prices(ctx context.Context, ids []int64) (map[int64]PricedProduct, error)
}

// Owner is the identity an order is attached to.
type Owner struct {
	ID   int64
	Role string
}

// IdentityDirectory resolves order owners.
type IdentityDirectory interface {
	// ResolveGuest returns the identity for the contact's email, creating a guest when none exists.
	ResolveGuest(ctx context.Context, contact GuestContact) (Owner, error)
	Member(ctx context.Context, id int64) (Owner, error)
}

// EventPublisher announces committed orders.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error
}

// NoopPublisher discards events.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, domain.OrderPlaced) error { return nil }
