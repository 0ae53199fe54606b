package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Availability is the stock flag shown on the menu. It does not gate checkout.
type Availability string

const (
	AvailabilityInStock    Availability = "IN_STOCK"
	AvailabilityOutOfStock Availability = "OUT_OF_STOCK"
)

// UncategorizedLabel is shown for products stored without a category.
const UncategorizedLabel = "Uncategorized"

var (
	ErrInvalidName         = errors.New("product name is required")
	ErrNegativePrice       = errors.New("product price must not be negative")
	ErrInvalidAvailability = errors.New("product availability is invalid")
	ErrInvalidProductID    = errors.New("product id must be greater than zero")
)

// Product is a menu entry and the authoritative source of its unit price.
type Product struct {
	ID           int64
	Category     string
	Name         string
	BasePrice    decimal.Decimal
	Description  string
	Availability Availability
}

// Patch carries a partial product update; nil fields are left unchanged.
type Patch struct {
	Category     *string
	Name         *string
	BasePrice    *decimal.Decimal
	Description  *string
	Availability *Availability
}

func NewProduct(category, name string, price decimal.Decimal, description string, availability Availability) (*Product, error) {
	p := &Product{
		Category:     strings.TrimSpace(category),
		Name:         strings.TrimSpace(name),
		BasePrice:    price,
		Description:  strings.TrimSpace(description),
		Availability: availability,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces invariants; an empty availability defaults to IN_STOCK.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.BasePrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.Availability == "" {
		p.Availability = AvailabilityInStock
	}
	switch p.Availability {
	case AvailabilityInStock, AvailabilityOutOfStock:
	default:
		return ErrInvalidAvailability
	}
	return nil
}

// Apply merges patch into p and revalidates. On failure p is unchanged.
func (p *Product) Apply(patch Patch) error {
	next := *p
	if patch.Category != nil {
		next.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.BasePrice != nil {
		next.BasePrice = *patch.BasePrice
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Availability != nil {
		next.Availability = Availability(strings.ToUpper(strings.TrimSpace(string(*patch.Availability))))
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

// DisplayCategory returns the category or the uncategorized label.
func (p *Product) DisplayCategory() string {
	if p.Category == "" {
		return UncategorizedLabel
	}
	return p.Category
}
