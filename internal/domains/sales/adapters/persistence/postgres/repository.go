package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
	"github.com/Apurer/cafe-api/internal/domains/sales/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists snapshots in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type snapshotRecord struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id"`
	TakenAt        time.Time `gorm:"column:taken_at;not null"`
	TotalOrders    int64     `gorm:"column:total_orders;not null"`
	TotalItemsSold int64     `gorm:"column:total_items_sold;not null"`
}

func (snapshotRecord) TableName() string { return "sales_snapshots" }

func (r *Repository) Save(ctx context.Context, snapshot *domain.Snapshot) (*domain.Snapshot, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres sales repository not configured")
	}
	if snapshot == nil {
		return nil, errors.New("snapshot is nil")
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	record := snapshotRecord{
		TakenAt:        snapshot.TakenAt,
		TotalOrders:    snapshot.TotalOrders,
		TotalItemsSold: snapshot.TotalItemsSold,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres sales repository not configured")
	}
	var records []snapshotRecord
	if err := r.db.WithContext(ctx).Order("taken_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Snapshot, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *snapshotRecord) toDomain() *domain.Snapshot {
	return &domain.Snapshot{
		ID:      r.ID,
		TakenAt: r.TakenAt.UTC(),
		Totals:  domain.Totals{TotalOrders: r.TotalOrders, TotalItemsSold: r.TotalItemsSold},
	}
}
