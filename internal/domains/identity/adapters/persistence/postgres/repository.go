package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/cafe-api/internal/domains/identity/domain"
	"github.com/Apurer/cafe-api/internal/domains/identity/ports"
	platformpostgres "github.com/Apurer/cafe-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists identities in PostgreSQL using GORM. The unique index on
// email is the serialization point for concurrent guest creation.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
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

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, ports.ErrNotFound
	}
	var record identityRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Identity, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record identityRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// Create inserts the identity and maps a unique violation on email to ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, errors.New("identity is nil")
	}
	clone := *identity
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if platformpostgres.IsUniqueViolation(err) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return record.toDomain()
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres identity repository not configured")
	}
	return nil
}

func toRecord(identity *domain.Identity) identityRecord {
	rec := identityRecord{
		ID:        identity.ID,
		Email:     identity.Email,
		Role:      identity.Role.String(),
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		CreatedAt: identity.CreatedAt,
	}
	if identity.PasswordHash != "" {
		hash := identity.PasswordHash
		rec.PasswordHash = &hash
	}
	return rec
}

func (r identityRecord) toDomain() (*domain.Identity, error) {
	role, err := domain.ParseRole(r.Role)
	if err != nil {
		return nil, err
	}
	identity := &domain.Identity{
		ID:        r.ID,
		Email:     r.Email,
		Role:      role,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		CreatedAt: r.CreatedAt,
	}
	if r.PasswordHash != nil {
		identity.PasswordHash = *r.PasswordHash
	}
	return identity, nil
}
