// Package audit publishes account lifecycle events to Kafka.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types published by the service.
const (
	EventUserRegistered = "user_registered"
	EventUserLoggedIn   = "user_logged_in"
	EventPasswordReset  = "password_reset"
)

// Event is a single account lifecycle record.
type Event struct {
	Type     string    `json:"type"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher writes events to a Kafka topic. A nil Publisher is valid and
// discards all events, so callers never need to branch on configuration.
type Publisher struct {
	writer *kafka.Writer
}

// New creates a Publisher for the given broker address and topic.
func New(brokerAddr, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokerAddr),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish sends the event, stamping At if unset.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.writer == nil {
		return nil
	}

	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Username),
		Value: value,
	})
}

// Close releases the underlying Kafka writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
