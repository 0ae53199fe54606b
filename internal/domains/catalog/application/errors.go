package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/cafe-api/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a product invariant.
	ErrInvalidInput = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidAvailability) ||
		errors.Is(err, domain.ErrInvalidProductID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
