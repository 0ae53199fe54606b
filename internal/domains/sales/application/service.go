package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
	"github.com/Apurer/cafe-api/internal/domains/sales/ports"
)

const (
	DefaultListLimit = 30
	MaxListLimit     = 500
)

// Service captures and lists sales snapshots.
type Service struct {
	repo   ports.Repository
	totals ports.OrderTotals
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, totals ports.OrderTotals, opts ...Option) *Service {
	s := &Service{repo: repo, totals: totals, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Capture reads all-time order totals and stores them as a new snapshot.
func (s *Service) Capture(ctx context.Context) (*domain.Snapshot, error) {
	takenAt := s.now()
	totals, err := s.totals.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("read order totals: %w", err)
	}
	snapshot, err := domain.NewSnapshot(takenAt, totals)
	if err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, snapshot)
}

func (s *Service) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.List(ctx, limit)
}

var _ ports.Service = (*Service)(nil)
