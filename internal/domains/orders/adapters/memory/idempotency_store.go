package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps checkout keys in memory for development and tests.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]ports.IdempotencyRecord
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		records: map[string]ports.IdempotencyRecord{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (s *IdempotencyStore) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	out := record
	return &out, nil
}

func (s *IdempotencyStore) Reserve(_ context.Context, key, requestHash string) (*ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if existing, ok := s.records[key]; ok {
		if !existing.Pending() || now.Sub(existing.CreatedAt) < ports.ReservationTTL {
			out := existing
			return &out, false, nil
		}
	}
	record := ports.IdempotencyRecord{Key: key, RequestHash: requestHash, CreatedAt: now}
	s.records[key] = record
	out := record
	return &out, true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key string, ownerID, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok || !record.Pending() {
		return ports.ErrIdempotencyConflict
	}
	record.OwnerID = ownerID
	record.OrderID = orderID
	s.records[key] = record
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.records[key]; ok && record.Pending() {
		delete(s.records, key)
	}
	return nil
}
