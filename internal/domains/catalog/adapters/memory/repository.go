package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/cafe-api/internal/domains/catalog/domain"
	"github.com/Apurer/cafe-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product store.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if _, ok := r.products[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) GetMany(_ context.Context, ids []int64) (map[int64]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make(map[int64]*domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			clone := *product
			found[id] = &clone
		}
	}
	return found, nil
}

func (r *Repository) List(_ context.Context, category string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if category != "" && product.Category != category {
			continue
		}
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) FindByNameAndCategory(_ context.Context, name, category string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var match *domain.Product
	for _, product := range r.products {
		if product.Name == name && product.Category == category {
			if match == nil || product.ID < match.ID {
				match = product
			}
		}
	}
	if match == nil {
		return nil, ports.ErrNotFound
	}
	clone := *match
	return &clone, nil
}
