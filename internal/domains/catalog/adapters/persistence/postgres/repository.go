package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/cafe-api/internal/domains/catalog/domain"
	"github.com/Apurer/cafe-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID           int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Category     string          `gorm:"column:category;index"`
	Name         string          `gorm:"column:name;not null"`
	BasePrice    decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null"`
	Description  string          `gorm:"column:description"`
	Availability string          `gorm:"column:availability;type:varchar(32);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts new products and updates existing ones column by column.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"category":     record.Category,
			"name":         record.Name,
			"base_price":   record.BasePrice,
			"description":  record.Description,
			"availability": record.Availability,
			"updated_at":   gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetMany reads the requested products in a single query.
func (r *Repository) GetMany(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	found := make(map[int64]*domain.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		found[records[i].ID] = records[i].toDomain()
	}
	return found, nil
}

func (r *Repository) List(ctx context.Context, category string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) FindByNameAndCategory(ctx context.Context, name, category string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	err := r.db.WithContext(ctx).
		Where("name = ? AND category = ?", name, category).
		Order("id").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:           product.ID,
		Category:     product.Category,
		Name:         product.Name,
		BasePrice:    product.BasePrice,
		Description:  product.Description,
		Availability: string(product.Availability),
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:           r.ID,
		Category:     r.Category,
		Name:         r.Name,
		BasePrice:    r.BasePrice,
		Description:  r.Description,
		Availability: domain.Availability(r.Availability),
	}
}
