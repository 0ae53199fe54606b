package ports

import (
	"context"

	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
)

// Repository persists snapshots.
type Repository interface {
	Save(ctx context.Context, snapshot *domain.Snapshot) (*domain.Snapshot, error)
	// List returns the newest snapshots first, at most limit of them.
	List(ctx context.Context, limit int) ([]*domain.Snapshot, error)
}

// OrderTotals reads all-time aggregates from the orders store.
type OrderTotals interface {
	Totals(ctx context.Context) (domain.Totals, error)
}

// Service exposes sales snapshot use cases.
type Service interface {
	Capture(ctx context.Context) (*domain.Snapshot, error)
	List(ctx context.Context, limit int) ([]*domain.Snapshot, error)
}

// SnapshotOrchestrator runs a capture, durably or inline.
type SnapshotOrchestrator interface {
	Capture(ctx context.Context) (*domain.Snapshot, error)
}
