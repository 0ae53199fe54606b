package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/cafe-api/internal/platform/postgres"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists checkout idempotency keys in PostgreSQL. The key
// column is the primary key, so only one concurrent Reserve can insert it.
type IdempotencyStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db, now: time.Now}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toPort(), nil
}

// Reserve inserts a pending row. On a duplicate key it takes over a stale
// pending row, otherwise it returns the row that holds the key.
func (s *IdempotencyStore) Reserve(ctx context.Context, key, requestHash string) (*ports.IdempotencyRecord, bool, error) {
	if err := s.ensureDB(); err != nil {
		return nil, false, err
	}
	now := s.now().UTC()
	dbRecord := idempotencyRecord{Key: key, RequestHash: requestHash, CreatedAt: now}
	err := s.db.WithContext(ctx).Create(&dbRecord).Error
	if err == nil {
		return dbRecord.toPort(), true, nil
	}
	if !platformpostgres.IsUniqueViolation(err) {
		return nil, false, err
	}

	takeover := s.db.WithContext(ctx).Model(&idempotencyRecord{}).
		Where("key = ? AND order_id = 0 AND created_at < ?", key, now.Add(-ports.ReservationTTL)).
		Updates(map[string]interface{}{"request_hash": requestHash, "owner_id": 0, "created_at": now})
	if takeover.Error != nil {
		return nil, false, takeover.Error
	}
	if takeover.RowsAffected == 1 {
		return dbRecord.toPort(), true, nil
	}

	existing, err := s.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Released between the insert and the read.
		return s.Reserve(ctx, key, requestHash)
	}
	return existing, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, ownerID, orderID int64) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&idempotencyRecord{}).
		Where("key = ? AND order_id = 0", key).
		Updates(map[string]interface{}{"owner_id": ownerID, "order_id": orderID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrIdempotencyConflict
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("key = ? AND order_id = 0", key).
		Delete(&idempotencyRecord{}).Error
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres idempotency store not configured")
	}
	return nil
}

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:128"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OwnerID     int64     `gorm:"column:owner_id;not null"`
	OrderID     int64     `gorm:"column:order_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (idempotencyRecord) TableName() string { return "checkout_idempotency_keys" }

func (r *idempotencyRecord) toPort() *ports.IdempotencyRecord {
	return &ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		OwnerID:     r.OwnerID,
		OrderID:     r.OrderID,
		CreatedAt:   r.CreatedAt,
	}
}
