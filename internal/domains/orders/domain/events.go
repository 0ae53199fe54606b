package domain

import "time"

// Channel distinguishes how an order was placed.
type Channel string

const (
	ChannelGuest  Channel = "guest"
	ChannelMember Channel = "member"
)

// OrderPlaced is emitted after an order commits.
type OrderPlaced struct {
	OrderID   int64
	OwnerID   int64
	Channel   Channel
	Status    Status
	TotalCost string
	ItemCount int
	PlacedAt  time.Time
}

// NewOrderPlaced derives the event from a persisted order.
func NewOrderPlaced(order *Order, channel Channel) OrderPlaced {
	return OrderPlaced{
		OrderID:   order.ID,
		OwnerID:   order.OwnerID,
		Channel:   channel,
		Status:    order.Status,
		TotalCost: order.TotalCost.StringFixed(2),
		ItemCount: order.ItemCount(),
		PlacedAt:  order.PlacedAt,
	}
}
