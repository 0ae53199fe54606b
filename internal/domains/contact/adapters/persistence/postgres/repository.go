package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/cafe-api/internal/domains/contact/domain"
	"github.com/Apurer/cafe-api/internal/domains/contact/ports"
)

var _ ports.Repository = (*Repository)(nil)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type submissionRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Phone       string    `gorm:"column:phone"`
	Email       string    `gorm:"column:email"`
	Subject     string    `gorm:"column:subject"`
	Message     string    `gorm:"column:message"`
	SubmittedAt time.Time `gorm:"column:submitted_at"`
}

func (submissionRecord) TableName() string { return "contact_submissions" }

func (r *Repository) Save(ctx context.Context, submission *domain.Submission) (*domain.Submission, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres contact repository not configured")
	}
	if submission == nil {
		return nil, errors.New("submission is nil")
	}
	record := submissionRecord{
		FirstName:   submission.FirstName,
		LastName:    submission.LastName,
		Phone:       submission.Phone,
		Email:       submission.Email,
		Subject:     submission.Subject,
		Message:     submission.Message,
		SubmittedAt: submission.SubmittedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, limit int) ([]*domain.Submission, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres contact repository not configured")
	}
	var records []submissionRecord
	if err := r.db.WithContext(ctx).Order("submitted_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Submission, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *submissionRecord) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Phone:       r.Phone,
		Email:       r.Email,
		Subject:     r.Subject,
		Message:     r.Message,
		SubmittedAt: r.SubmittedAt.UTC(),
	}
}
