package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/cafe-api/internal/domains/identity/domain"
	"github.com/Apurer/cafe-api/internal/domains/identity/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory identity store. The email index plays the role of
// the unique constraint.
type Repository struct {
	mu      sync.RWMutex
	byID    map[int64]*domain.Identity
	byEmail map[string]int64
	nextID  int64
	now     func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		byID:    map[int64]*domain.Identity{},
		byEmail: map[string]int64{},
		now:     time.Now,
	}
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, ports.ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalized]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.byID[id]
	return &clone, nil
}

func (r *Repository) FindByID(_ context.Context, id int64) (*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *identity
	return &clone, nil
}

func (r *Repository) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	if identity == nil {
		return nil, errors.New("identity is nil")
	}
	clone := *identity
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[clone.Email]; exists {
		return nil, ports.ErrDuplicateEmail
	}
	r.nextID++
	clone.ID = r.nextID
	clone.CreatedAt = r.now().UTC()
	r.byID[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	out := clone
	return &out, nil
}

// List returns every identity ordered by id.
func (r *Repository) List(_ context.Context) ([]*domain.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Identity, 0, len(r.byID))
	for id := int64(1); id <= r.nextID; id++ {
		if identity, ok := r.byID[id]; ok {
			clone := *identity
			list = append(list, &clone)
		}
	}
	return list, nil
}
