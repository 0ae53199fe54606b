package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/cafe-api/internal/domains/contact/domain"
	"github.com/Apurer/cafe-api/internal/domains/contact/ports"
)

// ErrInvalidInput wraps every submission validation failure.
var ErrInvalidInput = errors.New("invalid contact submission")

const DefaultListLimit = 50

type Service struct {
	repo ports.Repository
	now  func() time.Time
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Submission, error) {
	submission, err := domain.NewSubmission(input.FirstName, input.LastName, input.Phone, input.Email, input.Subject, input.Message, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.repo.Save(ctx, submission)
}

func (s *Service) List(ctx context.Context, limit int) ([]*domain.Submission, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.List(ctx, limit)
}

var _ ports.Service = (*Service)(nil)
