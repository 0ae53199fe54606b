package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals a malformed cart, contact, or status.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrProductNotFound is matched by every ProductNotFoundError.
	ErrProductNotFound = errors.New("product not found")
	// ErrIdentityNotFound means an authenticated member id has no identity row.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrOrderNotFound hides whether an order is missing or owned by someone else.
	ErrOrderNotFound = errors.New("order not found")
	// ErrIdempotencyConflict is returned when an idempotency key is replayed with a different cart.
	ErrIdempotencyConflict = errors.New("idempotency key already used for a different checkout")
	// ErrCheckoutInProgress is returned when another request still holds the idempotency key.
	ErrCheckoutInProgress = errors.New("a checkout with this idempotency key is still in progress")
	// ErrInvalidTransition is returned when a closed order is moved to another status.
	ErrInvalidTransition = errors.New("order status transition not allowed")
)

// ProductNotFoundError names the first cart product the catalog could not resolve.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrTotalTooLarge),
		errors.Is(err, ports.ErrInvalidContact):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrTerminalStatus):
		return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	case errors.Is(err, ports.ErrNotFound):
		return ErrOrderNotFound
	case errors.Is(err, ports.ErrOwnerNotFound):
		return fmt.Errorf("%w: %w", ErrIdentityNotFound, err)
	case errors.Is(err, ports.ErrIdempotencyConflict):
		return ErrIdempotencyConflict
	}
	return err
}
