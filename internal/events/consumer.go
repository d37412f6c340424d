package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsmthethwa44/Technova-API/internal/mq"
	"github.com/rs/zerolog"
)

// OrderMarker flips a user's pending orders to Paid.
type OrderMarker interface {
	MarkPaid(ctx context.Context, userID int) error
}

// PaymentConsumer processes payment-captured events. A payment for a
// user settles all of that user's pending order lines.
type PaymentConsumer struct {
	orders OrderMarker
	log    zerolog.Logger
}

func NewPaymentConsumer(orders OrderMarker, log zerolog.Logger) *PaymentConsumer {
	return &PaymentConsumer{orders: orders, log: log}
}

// Handle implements mq.Handler. Returning an error nacks the message so
// the broker redelivers it.
func (c *PaymentConsumer) Handle(ctx context.Context, msg mq.Message) error {
	var event PaymentCaptured
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		// Malformed payloads are dropped, not redelivered.
		c.log.Error().Str("message_id", msg.ID).Err(err).Msg("discarding malformed payment event")
		return nil
	}
	if event.UserID < 1 {
		c.log.Error().Str("transaction_id", event.TransactionID).Msg("discarding payment event without user")
		return nil
	}

	if err := c.orders.MarkPaid(ctx, event.UserID); err != nil {
		return fmt.Errorf("mark orders paid for user %d: %w", event.UserID, err)
	}

	c.log.Info().
		Str("transaction_id", event.TransactionID).
		Int("user_id", event.UserID).
		Float64("amount", event.Amount).
		Msg("orders settled")
	return nil
}
