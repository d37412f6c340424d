package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nsmthethwa44/Technova-API/internal/events"
	"github.com/nsmthethwa44/Technova-API/types"
)

type stubOrderRepo struct {
	created []types.Order
	paid    []int
}

func (s *stubOrderRepo) CreateBatch(_ context.Context, orders []types.Order) error {
	s.created = append(s.created, orders...)
	return nil
}

func (s *stubOrderRepo) ListPendingByUser(context.Context, int) ([]types.UserOrder, error) {
	return nil, nil
}

func (s *stubOrderRepo) TotalPendingAmount(context.Context, int) (float64, error) {
	return 0, nil
}

func (s *stubOrderRepo) Delete(context.Context, int, int) error {
	return nil
}

func (s *stubOrderRepo) MarkPaid(_ context.Context, userID int) error {
	s.paid = append(s.paid, userID)
	return nil
}

func (s *stubOrderRepo) ListAll(context.Context) ([]types.OrderReport, error) {
	return nil, nil
}

type stubPaymentRepo struct {
	created []types.Payment
}

func (s *stubPaymentRepo) Create(_ context.Context, payment types.Payment) (types.Payment, error) {
	payment.ID = len(s.created) + 1
	s.created = append(s.created, payment)
	return payment, nil
}

type recordedEvent struct {
	topic string
	data  []byte
}

type stubPublisher struct {
	events []recordedEvent
}

func (s *stubPublisher) Publish(_ context.Context, topic string, data []byte, _ map[string]string) (string, error) {
	s.events = append(s.events, recordedEvent{topic: topic, data: data})
	return "msg-1", nil
}

func TestPlaceAssignsSharedOrderID(t *testing.T) {
	orders := &stubOrderRepo{}
	publisher := &stubPublisher{}
	svc := NewOrderService(orders, &stubPaymentRepo{}, publisher)

	lines := []types.Order{
		{ProductID: 1, UserID: 9, Amount: 20, Qty: 2},
		{ProductID: 2, UserID: 9, Amount: 30, Qty: 1},
	}
	orderID, err := svc.Place(context.Background(), lines)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !strings.HasPrefix(orderID, publicIDPrefix) {
		t.Fatalf("order id %q missing prefix", orderID)
	}

	if len(orders.created) != 2 {
		t.Fatalf("expected 2 created lines, got %d", len(orders.created))
	}
	for _, line := range orders.created {
		if line.OrderID != orderID || line.Status != types.OrderStatusPending {
			t.Fatalf("unexpected line: %+v", line)
		}
	}

	if len(publisher.events) != 1 || publisher.events[0].topic != events.TopicOrderPlaced {
		t.Fatalf("unexpected events: %+v", publisher.events)
	}
	var placed events.OrderPlaced
	if err := json.Unmarshal(publisher.events[0].data, &placed); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if placed.OrderID != orderID || placed.UserID != 9 || placed.LineCount != 2 || placed.Total != 50 {
		t.Fatalf("unexpected event payload: %+v", placed)
	}
}

func TestPlaceRejectsEmptyOrder(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, &stubPaymentRepo{}, nil)
	if _, err := svc.Place(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty order")
	}
}

func TestCheckoutRecordsPayment(t *testing.T) {
	payments := &stubPaymentRepo{}
	publisher := &stubPublisher{}
	svc := NewOrderService(&stubOrderRepo{}, payments, publisher)

	created, err := svc.Checkout(context.Background(), types.Payment{
		PaymentMethod: "card",
		CardNumber:    "4111111111111111",
		UserID:        9,
		TotalAmount:   50,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !strings.HasPrefix(created.TransactionID, publicIDPrefix) {
		t.Fatalf("transaction id %q missing prefix", created.TransactionID)
	}

	if len(publisher.events) != 1 || publisher.events[0].topic != events.TopicPaymentCaptured {
		t.Fatalf("unexpected events: %+v", publisher.events)
	}
	var captured events.PaymentCaptured
	if err := json.Unmarshal(publisher.events[0].data, &captured); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if captured.TransactionID != created.TransactionID || captured.Amount != 50 || captured.Method != "card" {
		t.Fatalf("unexpected event payload: %+v", captured)
	}
}

func TestPlaceWithoutPublisher(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := NewOrderService(orders, &stubPaymentRepo{}, nil)

	if _, err := svc.Place(context.Background(), []types.Order{{ProductID: 1, UserID: 9, Amount: 5, Qty: 1}}); err != nil {
		t.Fatalf("place without publisher: %v", err)
	}
	if len(orders.created) != 1 {
		t.Fatalf("expected 1 created line, got %d", len(orders.created))
	}
}
