package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
)

type captureWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestKafkaPublisher_PublishOrderPlaced(t *testing.T) {
	w := &captureWriter{}
	placed := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	err := NewKafkaPublisher(w).PublishOrderPlaced(context.Background(), domain.OrderPlaced{
		OrderID: 42, OwnerID: 7, Channel: domain.ChannelGuest, Status: domain.StatusConfirmed,
		TotalCost: "9.50", ItemCount: 3, PlacedAt: placed,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "order-42", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, OrderPlacedType, string(msg.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "order.placed", body["type"])
	assert.Equal(t, "9.50", body["totalCost"])
	assert.Equal(t, "guest", body["channel"])
	assert.EqualValues(t, 42, body["orderId"])
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &captureWriter{err: errors.New("no brokers")}
	err := NewKafkaPublisher(w).PublishOrderPlaced(context.Background(), domain.OrderPlaced{OrderID: 1})
	assert.ErrorContains(t, err, "no brokers")
}
