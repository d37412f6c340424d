package mq

import (
	"context"
	"fmt"

	"github.com/nsmthethwa44/Technova-API/config"
)

// NewFromConfig constructs a Broker for the configured backend.
func NewFromConfig(ctx context.Context, cfg config.BrokerConfig) (*Broker, error) {
	switch cfg.Backend {
	case "rabbitmq":
		client, err := NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return New(client), nil
	case "pubsub":
		client, err := NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return New(client), nil
	default:
		return nil, fmt.Errorf("unknown broker backend %q", cfg.Backend)
	}
}
