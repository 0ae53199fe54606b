package ports

import (
	"context"
	"errors"

	"github.com/Apurer/cafe-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists menu products.
type Repository interface {
	// Save inserts when ID is zero, otherwise updates the existing row.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetMany returns the products that exist among ids, keyed by id.
	GetMany(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
	// List returns products ordered by id, optionally restricted to a category.
	List(ctx context.Context, category string) ([]*domain.Product, error)
	FindByNameAndCategory(ctx context.Context, name, category string) (*domain.Product, error)
}
