// Package directory adapts the catalog and identity contexts to the ports the
// checkout engine depends on.
package directory

import (
	"context"

	catalogdomain "github.com/Apurer/cafe-api/internal/domains/catalog/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

// ProductLookup is the slice of the catalog service checkout needs.
type ProductLookup interface {
	Lookup(ctx context.Context, ids []int64) (map[int64]*catalogdomain.Product, error)
}

// CatalogPrices reads authoritative unit prices from the catalog.
type CatalogPrices struct {
	catalog ProductLookup
}

func NewCatalogPrices(catalog ProductLookup) *CatalogPrices {
	return &CatalogPrices{catalog: catalog}
}

func (c *CatalogPrices) Prices(ctx context.Context, ids []int64) (map[int64]ports.PricedProduct, error) {
	products, err := c.catalog.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]ports.PricedProduct, len(products))
	for id, product := range products {
		out[id] = ports.PricedProduct{ID: product.ID, Name: product.Name, UnitPrice: product.BasePrice}
	}
	return out, nil
}

var _ ports.PriceLookup = (*CatalogPrices)(nil)
