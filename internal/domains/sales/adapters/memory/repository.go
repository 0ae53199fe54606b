package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
	"github.com/Apurer/cafe-api/internal/domains/sales/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	mu        sync.RWMutex
	snapshots []domain.Snapshot
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Save(_ context.Context, snapshot *domain.Snapshot) (*domain.Snapshot, error) {
	if snapshot == nil {
		return nil, errors.New("snapshot is nil")
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *snapshot
	stored.ID = int64(len(r.snapshots) + 1)
	r.snapshots = append(r.snapshots, stored)
	return &stored, nil
}

func (r *Repository) List(_ context.Context, limit int) ([]*domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Snapshot, 0, limit)
	for i := len(r.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		s := r.snapshots[i]
		out = append(out, &s)
	}
	return out, nil
}
