package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/cafe-api/internal/domains/contact/domain"
	"github.com/Apurer/cafe-api/internal/domains/contact/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	mu          sync.RWMutex
	submissions []domain.Submission
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Save(_ context.Context, submission *domain.Submission) (*domain.Submission, error) {
	if submission == nil {
		return nil, errors.New("submission is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *submission
	stored.ID = int64(len(r.submissions) + 1)
	r.submissions = append(r.submissions, stored)
	return &stored, nil
}

// List returns newest first.
func (r *Repository) List(_ context.Context, limit int) ([]*domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Submission, 0, limit)
	for i := len(r.submissions) - 1; i >= 0 && len(out) < limit; i-- {
		s := r.submissions[i]
		out = append(out, &s)
	}
	return out, nil
}
