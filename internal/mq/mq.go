package mq

import "context"

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, topic string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// Broker wraps a backend with a stable API.
type Broker struct {
	backend Backend
}

// New constructs a Broker wrapper for the provided backend.
func New(backend Backend) *Broker {
	return &Broker{backend: backend}
}

// Publish sends a message to the named topic.
func (b *Broker) Publish(ctx context.Context, topic string, data []byte, attrs map[string]string) (string, error) {
	return b.backend.Publish(ctx, topic, data, attrs)
}

// Subscribe consumes messages from the named topic.
func (b *Broker) Subscribe(ctx context.Context, topic string, handler Handler) error {
	return b.backend.Subscribe(ctx, topic, handler)
}

// Close closes the underlying backend.
func (b *Broker) Close() error {
	return b.backend.Close()
}
