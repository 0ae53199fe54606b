package ports

import (
	"context"

	"github.com/Apurer/cafe-api/internal/domains/contact/domain"
)

type Repository interface {
	Save(ctx context.Context, submission *domain.Submission) (*domain.Submission, error)
	List(ctx context.Context, limit int) ([]*domain.Submission, error)
}

type SubmitInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Subject   string
	Message   string
}

type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Submission, error)
	List(ctx context.Context, limit int) ([]*domain.Submission, error)
}
