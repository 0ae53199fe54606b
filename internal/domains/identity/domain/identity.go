package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidEmail      = errors.New("email is invalid")
	ErrMissingCredential = errors.New("member identity requires a credential hash")
	ErrGuestCredential   = errors.New("guest identity cannot carry a credential")
)

// Identity is any party able to own an order: a registered member or a checkout guest.
type Identity struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// NormalizeEmail trims and lower-cases an address so lookups and the unique index agree.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NewGuest builds a credential-less identity from checkout contact details.
func NewGuest(email, firstName, lastName string) (*Identity, error) {
	identity := &Identity{
		Email:     email,
		Role:      RoleGuest,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	return identity, nil
}

// NewMember builds a registered identity holding the given role and password hash.
func NewMember(email, passwordHash string, role Role, firstName, lastName string) (*Identity, error) {
	identity := &Identity{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	return identity, nil
}

// Validate enforces invariants on the identity and normalizes its email.
func (i *Identity) Validate() error {
	email, err := NormalizeEmail(i.Email)
	if err != nil {
		return err
	}
	i.Email = email
	if !i.Role.Valid() {
		return ErrInvalidRole
	}
	if i.Role == RoleGuest && i.PasswordHash != "" {
		return ErrGuestCredential
	}
	if i.Role != RoleGuest && i.PasswordHash == "" {
		return ErrMissingCredential
	}
	return nil
}

// HasCredential reports whether the identity can log in.
func (i *Identity) HasCredential() bool {
	return i != nil && i.PasswordHash != ""
}
