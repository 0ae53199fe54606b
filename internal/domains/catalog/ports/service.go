package ports

import (
	"context"

	"github.com/Apurer/cafe-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, category string) ([]*domain.Product, error)
	Describe(ctx context.Context, id int64) (string, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch domain.Patch) (*domain.Product, error)
	// Lookup reads current prices for ids in one round trip; unknown ids are absent from the result.
	Lookup(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
	SeedDefaultMenu(ctx context.Context) (int, error)
}
