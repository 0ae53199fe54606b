package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps orders in memory. Create assigns order and item ids under a
// single lock, so an order is never visible without its items.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*domain.Order
	nextOrder  int64
	nextItem   int64
	failCreate error
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.Order{}}
}

// FailCreate makes every subsequent Create return err without storing anything.
func (r *Repository) FailCreate(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failCreate = err
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return nil, r.failCreate
	}
	stored := order.Clone()
	r.nextOrder++
	stored.ID = r.nextOrder
	for i := range stored.Items {
		r.nextItem++
		stored.Items[i].ID = r.nextItem
		stored.Items[i].OrderID = stored.ID
	}
	r.orders[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *Repository) FindOwned(ctx context.Context, id, ownerID int64) (*domain.Order, error) {
	order, err := r.FindOwnedWithItems(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	return order.Summary(), nil
}

func (r *Repository) FindOwnedWithItems(_ context.Context, id, ownerID int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok || order.OwnerID != ownerID {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) Get(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Summary(), nil
}

func (r *Repository) List(_ context.Context, statuses []domain.Status) ([]*domain.Order, error) {
	wanted := make(map[domain.Status]struct{}, len(statuses))
	for _, status := range statuses {
		wanted[status] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if len(wanted) > 0 {
			if _, ok := wanted[order.Status]; !ok {
				continue
			}
		}
		out = append(out, order.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id int64, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	order.Status = status
	return order.Summary(), nil
}

func (r *Repository) Aggregates(_ context.Context) (ports.Aggregates, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agg := ports.Aggregates{TotalOrders: int64(len(r.orders))}
	for _, order := range r.orders {
		agg.TotalItemsSold += int64(order.ItemCount())
	}
	return agg, nil
}
