package ports

import (
	"context"

	"github.com/Apurer/cafe-api/internal/domains/identity/domain"
)

// TokenIssuer mints bearer credentials for authenticated identities.
type TokenIssuer interface {
	Issue(id int64, email string, role domain.Role) (string, error)
}

// RegisterInput carries a member sign-up request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// GuestContact is the contact information supplied at guest checkout.
type GuestContact struct {
	Email     string
	FirstName string
	LastName  string
}

// Session is an authenticated identity plus its freshly issued token.
type Session struct {
	Identity *domain.Identity
	Token    string
}

// Service exposes identity use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	ResolveGuest(ctx context.Context, contact GuestContact) (*domain.Identity, error)
	FindByID(ctx context.Context, id int64) (*domain.Identity, error)
}
