package ports

import (
	"context"
	"errors"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
)

// ErrNotFound covers both a missing order and an order owned by someone else.
var ErrNotFound = errors.New("order not found")

// Aggregates are whole-store counters used by sales snapshots.
type Aggregates struct {
	TotalOrders    int64
	TotalItemsSold int64
}

// Repository persists order aggregates.
type Repository interface {
	// Create stores the order and every item atomically and returns the stored copy with ids assigned.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindOwned returns the order without items when it exists and belongs to ownerID.
	FindOwned(ctx context.Context, id, ownerID int64) (*domain.Order, error)
	// FindOwnedWithItems is FindOwned with items loaded in insertion order.
	FindOwnedWithItems(ctx context.Context, id, ownerID int64) (*domain.Order, error)
	// List returns orders (without items) whose status is in statuses, or all orders when statuses is empty.
	List(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Aggregates(ctx context.Context) (Aggregates, error)
}
