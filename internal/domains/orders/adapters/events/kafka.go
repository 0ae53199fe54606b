// Package events publishes order events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

// OrderPlacedType is the value of the event-type header.
const OrderPlacedType = "order.placed"

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// KafkaPublisher writes one message per placed order, keyed by order id so
// all events of an order land on the same partition.
type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

type orderPlacedMessage struct {
	Type      string    `json:"type"`
	OrderID   int64     `json:"orderId"`
	OwnerID   int64     `json:"ownerId"`
	Channel   string    `json:"channel"`
	Status    string    `json:"status"`
	TotalCost string    `json:"totalCost"`
	ItemCount int       `json:"itemCount"`
	PlacedAt  time.Time `json:"placedAt"`
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlaced) error {
	payload, err := json.Marshal(orderPlacedMessage{
		Type:      OrderPlacedType,
		OrderID:   event.OrderID,
		OwnerID:   event.OwnerID,
		Channel:   string(event.Channel),
		Status:    string(event.Status),
		TotalCost: event.TotalCost,
		ItemCount: event.ItemCount,
		PlacedAt:  event.PlacedAt,
	})
	if err != nil {
		return fmt.Errorf("encode order placed event: %w", err)
	}
	msg := kafkago.Message{
		Key:     []byte("order-" + strconv.FormatInt(event.OrderID, 10)),
		Value:   payload,
		Headers: []kafkago.Header{{Key: "event-type", Value: []byte(OrderPlacedType)}},
		Time:    event.PlacedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order placed event: %w", err)
	}
	return nil
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)
