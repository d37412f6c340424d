// Package events defines the messages the shop publishes to the broker
// and the worker-side consumers that react to them.
package events

import "time"

// Topic names shared by publishers and the worker.
const (
	TopicOrderPlaced     = "orders.placed"
	TopicPaymentCaptured = "payments.captured"
)

// OrderPlaced is published once per placed order (not per line).
type OrderPlaced struct {
	OrderID   string    `json:"order_id"`
	UserID    int       `json:"user_id"`
	LineCount int       `json:"line_count"`
	Total     float64   `json:"total"`
	PlacedAt  time.Time `json:"placed_at"`
}

// PaymentCaptured is published when checkout records a claimed payment.
type PaymentCaptured struct {
	TransactionID string    `json:"transaction_id"`
	UserID        int       `json:"user_id"`
	Method        string    `json:"method"`
	Amount        float64   `json:"amount"`
	CapturedAt    time.Time `json:"captured_at"`
}
