package directory

import (
	"context"
	"errors"
	"fmt"

	identityapp "github.com/Apurer/cafe-api/internal/domains/identity/application"
	identitydomain "github.com/Apurer/cafe-api/internal/domains/identity/domain"
	identityports "github.com/Apurer/cafe-api/internal/domains/identity/ports"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

// IdentityResolver is the slice of the identity service checkout needs.
type IdentityResolver interface {
	ResolveGuest(ctx context.Context, contact identityports.GuestContact) (*identitydomain.Identity, error)
	FindByID(ctx context.Context, id int64) (*identitydomain.Identity, error)
}

// Identities resolves order owners through the identity context.
type Identities struct {
	identities IdentityResolver
}

func NewIdentities(identities IdentityResolver) *Identities {
	return &Identities{identities: identities}
}

func (d *Identities) ResolveGuest(ctx context.Context, contact ports.GuestContact) (ports.Owner, error) {
	identity, err := d.identities.ResolveGuest(ctx, identityports.GuestContact{
		Email:     contact.Email,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
	})
	if err != nil {
		if errors.Is(err, identityapp.ErrInvalidInput) {
			return ports.Owner{}, fmt.Errorf("%w: %w", ports.ErrInvalidContact, err)
		}
		return ports.Owner{}, err
	}
	return ports.Owner{ID: identity.ID, Role: identity.Role.String()}, nil
}

func (d *Identities) Member(ctx context.Context, id int64) (ports.Owner, error) {
	identity, err := d.identities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, identityports.ErrNotFound) {
			return ports.Owner{}, ports.ErrOwnerNotFound
		}
		return ports.Owner{}, err
	}
	return ports.Owner{ID: identity.ID, Role: identity.Role.String()}, nil
}

var _ ports.IdentityDirectory = (*Identities)(nil)
