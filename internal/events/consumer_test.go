package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nsmthethwa44/Technova-API/internal/mq"
	"github.com/rs/zerolog"
)

type stubOrderMarker struct {
	paid []int
	err  error
}

func (s *stubOrderMarker) MarkPaid(_ context.Context, userID int) error {
	if s.err != nil {
		return s.err
	}
	s.paid = append(s.paid, userID)
	return nil
}

func paymentMessage(t *testing.T, event PaymentCaptured) mq.Message {
	t.Helper()
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return mq.Message{ID: "msg-1", Data: data}
}

func TestPaymentConsumerSettlesOrders(t *testing.T) {
	marker := &stubOrderMarker{}
	consumer := NewPaymentConsumer(marker, zerolog.Nop())

	msg := paymentMessage(t, PaymentCaptured{TransactionID: "nova-abc", UserID: 4, Method: "card", Amount: 50})
	if err := consumer.Handle(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(marker.paid) != 1 || marker.paid[0] != 4 {
		t.Fatalf("unexpected paid users: %v", marker.paid)
	}
}

func TestPaymentConsumerDropsMalformedPayload(t *testing.T) {
	marker := &stubOrderMarker{}
	consumer := NewPaymentConsumer(marker, zerolog.Nop())

	if err := consumer.Handle(context.Background(), mq.Message{ID: "msg-1", Data: []byte("not json")}); err != nil {
		t.Fatalf("expected malformed payload to be dropped, got %v", err)
	}
	if len(marker.paid) != 0 {
		t.Fatalf("unexpected paid users: %v", marker.paid)
	}
}

func TestPaymentConsumerDropsEventWithoutUser(t *testing.T) {
	marker := &stubOrderMarker{}
	consumer := NewPaymentConsumer(marker, zerolog.Nop())

	msg := paymentMessage(t, PaymentCaptured{TransactionID: "nova-abc"})
	if err := consumer.Handle(context.Background(), msg); err != nil {
		t.Fatalf("expected event without user to be dropped, got %v", err)
	}
	if len(marker.paid) != 0 {
		t.Fatalf("unexpected paid users: %v", marker.paid)
	}
}

func TestPaymentConsumerPropagatesStoreErrors(t *testing.T) {
	marker := &stubOrderMarker{err: errors.New("db down")}
	consumer := NewPaymentConsumer(marker, zerolog.Nop())

	msg := paymentMessage(t, PaymentCaptured{TransactionID: "nova-abc", UserID: 4})
	if err := consumer.Handle(context.Background(), msg); err == nil {
		t.Fatalf("expected error so the broker redelivers")
	}
}
