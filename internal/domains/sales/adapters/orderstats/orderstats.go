// Package orderstats exposes order aggregates to the sales context.
package orderstats

import (
	"context"

	ordersports "github.com/Apurer/cafe-api/internal/domains/orders/ports"
	"github.com/Apurer/cafe-api/internal/domains/sales/domain"
	"github.com/Apurer/cafe-api/internal/domains/sales/ports"
)

// Aggregator is the slice of the orders repository sales needs.
type Aggregator interface {
	Aggregates(ctx context.Context) (ordersports.Aggregates, error)
}

type Source struct {
	orders Aggregator
}

func New(orders Aggregator) *Source {
	return &Source{orders: orders}
}

func (s *Source) Totals(ctx context.Context) (domain.Totals, error) {
	agg, err := s.orders.Aggregates(ctx)
	if err != nil {
		return domain.Totals{}, err
	}
	return domain.Totals{TotalOrders: agg.TotalOrders, TotalItemsSold: agg.TotalItemsSold}, nil
}

var _ ports.OrderTotals = (*Source)(nil)
