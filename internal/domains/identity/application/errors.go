package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/cafe-api/internal/domains/identity/domain"
)

var (
	// ErrInvalidInput signals the request violated an identity invariant.
	ErrInvalidInput = errors.New("invalid identity input")
	// ErrEmailTaken is returned when registering an email that already has an identity.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials covers unknown emails, guest identities, and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrWeakPassword signals a password shorter than MinPasswordLength.
	ErrWeakPassword = errors.New("password is too short")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, domain.ErrMissingCredential) ||
		errors.Is(err, domain.ErrGuestCredential) ||
		errors.Is(err, ErrWeakPassword) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
