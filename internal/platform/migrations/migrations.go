package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for every bounded context. Adapters never automigrate.
// Foreign keys are declared as belongs-to relations so AutoMigrate emits the constraints
// on the referencing table.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&identityRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&idempotencyRecord{},
		&salesSnapshotRecord{},
		&contactSubmissionRecord{},
	)
}

type identityRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Email        string    `gorm:"column:email;size:320;uniqueIndex;not null"`
	PasswordHash *string   `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(16);not null"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (identityRecord) TableName() string { return "identities" }

type productRecord struct {
	ID           int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Category     string          `gorm:"column:category;index"`
	Name         string          `gorm:"column:name;not null"`
	BasePrice    decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null;check:chk_products_base_price,base_price >= 0"`
	Description  string          `gorm:"column:description"`
	Availability string          `gorm:"column:availability;type:varchar(32);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type orderRecord struct {
	ID        int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OwnerID   int64           `gorm:"column:owner_id;not null;index:idx_orders_owner"`
	Owner     *identityRecord `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	TotalCost decimal.Decimal `gorm:"column:total_cost;type:numeric(12,2);not null"`
	Status    string          `gorm:"column:status;type:varchar(16);not null;index"`
	PlacedAt  time.Time       `gorm:"column:placed_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID     int64           `gorm:"column:order_id;not null;index"`
	Order       *orderRecord    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductID   int64           `gorm:"column:product_id;not null"`
	Product     *productRecord  `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	ProductName string          `gorm:"column:product_name;not null"`
	Quantity    int             `gorm:"column:quantity;not null;check:chk_order_items_quantity,quantity > 0"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:128"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OwnerID     int64     `gorm:"column:owner_id;not null"`
	OrderID     int64     `gorm:"column:order_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

func (idempotencyRecord) TableName() string { return "checkout_idempotency_keys" }

type salesSnapshotRecord struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id"`
	TakenAt        time.Time `gorm:"column:taken_at;not null;index"`
	TotalOrders    int64     `gorm:"column:total_orders;not null"`
	TotalItemsSold int64     `gorm:"column:total_items_sold;not null"`
}

func (salesSnapshotRecord) TableName() string { return "sales_snapshots" }

type contactSubmissionRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	FirstName   string    `gorm:"column:first_name;not null"`
	LastName    string    `gorm:"column:last_name;not null"`
	Phone       string    `gorm:"column:phone;not null"`
	Email       string    `gorm:"column:email;size:320;not null"`
	Subject     string    `gorm:"column:subject;not null"`
	Message     string    `gorm:"column:message;type:text;not null"`
	SubmittedAt time.Time `gorm:"column:submitted_at;not null;index"`
}

func (contactSubmissionRecord) TableName() string { return "contact_submissions" }
