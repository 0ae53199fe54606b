// Package kafka builds producers for the order event stream.
package kafka

import (
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// DefaultOrderTopic carries order lifecycle events.
const DefaultOrderTopic = "cafe.orders"

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// NewWriter returns a writer for topic. Returns nil when no brokers are configured.
func NewWriter(brokers []string, topic string) *kafkago.Writer {
	if len(brokers) == 0 {
		return nil
	}
	if strings.TrimSpace(topic) == "" {
		topic = DefaultOrderTopic
	}
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.LeastBytes{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}
}
