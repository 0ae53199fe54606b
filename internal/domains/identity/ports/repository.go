package ports

import (
	"context"
	"errors"

	"github.com/Apurer/cafe-api/internal/domains/identity/domain"
)

var (
	ErrNotFound       = errors.New("identity not found")
	ErrDuplicateEmail = errors.New("identity email already exists")
)

// Repository is the identity store keyed by unique email.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id int64) (*domain.Identity, error)
	// Create assigns an id and persists the identity. A second identity for the
	// same email fails with ErrDuplicateEmail.
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
}
