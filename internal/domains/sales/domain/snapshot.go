package domain

import (
	"errors"
	"time"
)

var (
	ErrNegativeTotals = errors.New("snapshot totals must not be negative")
	ErrMissingTakenAt = errors.New("snapshot time is required")
)

// Totals are all-time order counters at one instant.
type Totals struct {
	TotalOrders    int64
	TotalItemsSold int64
}

// Snapshot is an immutable audit record of Totals. Many snapshots may share a day.
type Snapshot struct {
	ID      int64
	TakenAt time.Time
	Totals
}

func NewSnapshot(takenAt time.Time, totals Totals) (*Snapshot, error) {
	s := &Snapshot{TakenAt: takenAt.UTC(), Totals: totals}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) Validate() error {
	if s.TakenAt.IsZero() {
		return ErrMissingTakenAt
	}
	if s.TotalOrders < 0 || s.TotalItemsSold < 0 {
		return ErrNegativeTotals
	}
	return nil
}
