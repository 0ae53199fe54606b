package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict is returned when a key is already bound to a different request or order.
var ErrIdempotencyConflict = errors.New("idempotency key reuse with different request")

// ReservationTTL bounds how long an unfinished reservation blocks its key. An
// older pending reservation may be taken over by the next request.
const ReservationTTL = 2 * time.Minute

// IdempotencyRecord binds a checkout key to the order it produced. OrderID is
// zero while the checkout holding the key is still running.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OwnerID     int64
	OrderID     int64
	CreatedAt   time.Time
}

// Pending reports whether the key is reserved but not yet bound to an order.
func (r IdempotencyRecord) Pending() bool {
	return r.OrderID == 0
}

// IdempotencyStore persists checkout idempotency keys. A key is reserved
// before the order is written and completed once the order commits.
type IdempotencyStore interface {
	// Get returns nil when the key is unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Reserve claims key for the request. When the key is already held, the
	// existing record is returned with reserved set to false.
	Reserve(ctx context.Context, key, requestHash string) (record *IdempotencyRecord, reserved bool, err error)
	// Complete binds a reserved key to its committed order.
	Complete(ctx context.Context, key string, ownerID, orderID int64) error
	// Release drops a reservation that never produced an order.
	Release(ctx context.Context, key string) error
}
