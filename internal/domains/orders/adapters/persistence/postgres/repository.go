package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID        int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OwnerID   int64           `gorm:"column:owner_id;not null;index"`
	TotalCost decimal.Decimal `gorm:"column:total_cost;type:numeric(12,2);not null"`
	Status    string          `gorm:"column:status;type:varchar(16);not null;index"`
	PlacedAt  time.Time       `gorm:"column:placed_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
	Items     []itemRecord    `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

type itemRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID     int64           `gorm:"column:order_id;not null;index"`
	ProductID   int64           `gorm:"column:product_id;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
}

func (itemRecord) TableName() string { return "order_items" }

// Create inserts the order row and every item row in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	items := record.Items
	record.Items = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&record).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = record.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	record.Items = items
	return record.toDomain(), nil
}

func (r *Repository) FindOwned(ctx context.Context, id, ownerID int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&record).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) FindOwnedWithItems(ctx context.Context, id, ownerID int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&record).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id")
	if len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, status := range statuses {
			names = append(names, string(status))
		}
		query = query.Where("status IN ?", names)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Order, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repository) Aggregates(ctx context.Context) (ports.Aggregates, error) {
	if err := r.ensureDB(); err != nil {
		return ports.Aggregates{}, err
	}
	var row struct {
		TotalOrders    int64
		TotalItemsSold int64
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT (SELECT COUNT(*) FROM orders) AS total_orders,
		        (SELECT COALESCE(SUM(quantity), 0) FROM order_items) AS total_items_sold`,
	).Scan(&row).Error
	if err != nil {
		return ports.Aggregates{}, err
	}
	return ports.Aggregates{TotalOrders: row.TotalOrders, TotalItemsSold: row.TotalItemsSold}, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

func toRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		ID:        order.ID,
		OwnerID:   order.OwnerID,
		TotalCost: order.TotalCost,
		Status:    string(order.Status),
		PlacedAt:  order.PlacedAt,
		Items:     make([]itemRecord, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		record.Items = append(record.Items, itemRecord{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return record
}

// toDomain leaves Items nil when the items association was not loaded.
func (r *orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		TotalCost: r.TotalCost,
		Status:    domain.Status(r.Status),
		PlacedAt:  r.PlacedAt.UTC(),
	}
	if len(r.Items) > 0 {
		order.Items = make([]domain.Item, 0, len(r.Items))
		for _, item := range r.Items {
			order.Items = append(order.Items, domain.Item{
				ID:          item.ID,
				OrderID:     item.OrderID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}
	}
	return order
}
