//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
	"github.com/Apurer/cafe-api/internal/platform/postgres/pgtest"
)

func seed(t *testing.T, db *gorm.DB) (owner, other, latte, scone int64) {
	t.Helper()
	require.NoError(t, db.Raw(`INSERT INTO identities (email, role, created_at, updated_at) VALUES ('a@example.com', 'GUEST', NOW(), NOW()) RETURNING id`).Scan(&owner).Error)
	require.NoError(t, db.Raw(`INSERT INTO identities (email, role, created_at, updated_at) VALUES ('b@example.com', 'GUEST', NOW(), NOW()) RETURNING id`).Scan(&other).Error)
	require.NoError(t, db.Raw(`INSERT INTO products (category, name, base_price, availability, created_at, updated_at) VALUES ('COFFEE', 'Latte', 4.50, 'IN_STOCK', NOW(), NOW()) RETURNING id`).Scan(&latte).Error)
	require.NoError(t, db.Raw(`INSERT INTO products (category, name, base_price, availability, created_at, updated_at) VALUES ('PASTRIES', 'Scone', 3.25, 'IN_STOCK', NOW(), NOW()) RETURNING id`).Scan(&scone).Error)
	return owner, other, latte, scone
}

func place(t *testing.T, owner int64, lines ...domain.PricedLine) *domain.Order {
	t.Helper()
	order, err := domain.PlaceOrder(owner, domain.StatusPending, lines, time.Now())
	require.NoError(t, err)
	return order
}

func TestRepository_CreateAndOwnerScopedReads(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner, other, latte, scone := seed(t, db)

	created, err := repo.Create(ctx, place(t, owner,
		domain.PricedLine{ProductID: latte, ProductName: "Latte", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")},
		domain.PricedLine{ProductID: scone, ProductName: "Scone", Quantity: 1, UnitPrice: decimal.RequireFromString("3.25")},
	))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Len(t, created.Items, 2)

	summary, err := repo.FindOwned(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, summary.Items)
	assert.Equal(t, "12.25", summary.TotalCost.StringFixed(2))

	detail, err := repo.FindOwnedWithItems(ctx, created.ID, owner)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "Latte", detail.Items[0].ProductName)
	assert.True(t, detail.Items[1].UnitPrice.Equal(decimal.RequireFromString("3.25")))

	_, err = repo.FindOwned(ctx, created.ID, other)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = repo.FindOwnedWithItems(ctx, created.ID, other)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_CreateRollsBackOnItemFailure(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner, _, latte, _ := seed(t, db)

	_, err := repo.Create(ctx, place(t, owner,
		domain.PricedLine{ProductID: latte, ProductName: "Latte", Quantity: 1, UnitPrice: decimal.NewFromInt(4)},
		domain.PricedLine{ProductID: 999999, ProductName: "Ghost", Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
	))
	require.Error(t, err)

	agg, err := repo.Aggregates(ctx)
	require.NoError(t, err)
	assert.Equal(t, ports.Aggregates{}, agg)
}

func TestRepository_StatusListAndAggregates(t *testing.T) {
	db := pgtest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner, other, latte, _ := seed(t, db)

	first, err := repo.Create(ctx, place(t, owner, domain.PricedLine{ProductID: latte, ProductName: "Latte", Quantity: 3, UnitPrice: decimal.NewFromInt(4)}))
	require.NoError(t, err)
	_, err = repo.Create(ctx, place(t, other, domain.PricedLine{ProductID: latte, ProductName: "Latte", Quantity: 2, UnitPrice: decimal.NewFromInt(4)}))
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, first.ID, domain.StatusPickup)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPickup, updated.Status)

	pickup, err := repo.List(ctx, []domain.Status{domain.StatusPickup})
	require.NoError(t, err)
	require.Len(t, pickup, 1)
	assert.Equal(t, first.ID, pickup[0].ID)

	_, err = repo.UpdateStatus(ctx, 424242, domain.StatusPickup)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	agg, err := repo.Aggregates(ctx)
	require.NoError(t, err)
	assert.Equal(t, ports.Aggregates{TotalOrders: 2, TotalItemsSold: 5}, agg)
}

func TestIdempotencyStore_ConcurrentReserve(t *testing.T) {
	db := pgtest.Start(t)
	store := NewIdempotencyStore(db)
	ctx := context.Background()

	var wg sync.WaitGroup
	wins := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, reserved, err := store.Reserve(ctx, "k1", "h")
			assert.NoError(t, err)
			wins <- reserved
		}()
	}
	wg.Wait()
	close(wins)
	won := 0
	for reserved := range wins {
		if reserved {
			won++
		}
	}
	assert.Equal(t, 1, won)

	require.NoError(t, store.Complete(ctx, "k1", 1, 10))
	assert.ErrorIs(t, store.Complete(ctx, "k1", 1, 11), ports.ErrIdempotencyConflict)
	require.NoError(t, store.Release(ctx, "k1"))

	existing, reserved, err := store.Reserve(ctx, "k1", "other")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.Equal(t, int64(10), existing.OrderID)
	assert.Equal(t, "h", existing.RequestHash)

	_, reserved, err = store.Reserve(ctx, "k2", "h")
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, store.Release(ctx, "k2"))
	missing, err := store.Get(ctx, "k2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
