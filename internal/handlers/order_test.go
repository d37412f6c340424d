package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nsmthethwa44/Technova-API/internal/events"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/types"
)

type memOrderRepo struct {
	mu     sync.Mutex
	lines  []types.Order
	nextID int
}

func (m *memOrderRepo) CreateBatch(_ context.Context, orders []types.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range orders {
		m.nextID++
		line.ID = m.nextID
		m.lines = append(m.lines, line)
	}
	return nil
}

func (m *memOrderRepo) ListPendingByUser(_ context.Context, userID int) ([]types.UserOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.UserOrder
	for _, line := range m.lines {
		if line.UserID == userID && line.Status == types.OrderStatusPending {
			out = append(out, types.UserOrder{ProductID: line.ProductID, Qty: line.Qty, Amount: line.Amount})
		}
	}
	return out, nil
}

func (m *memOrderRepo) TotalPendingAmount(_ context.Context, userID int) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, line := range m.lines {
		if line.UserID == userID && line.Status == types.OrderStatusPending {
			total += line.Amount
		}
	}
	return total, nil
}

func (m *memOrderRepo) Delete(_ context.Context, userID, productID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, line := range m.lines {
		if line.UserID == userID && line.ProductID == productID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memOrderRepo) MarkPaid(_ context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lines {
		if m.lines[i].UserID == userID && m.lines[i].Status == types.OrderStatusPending {
			m.lines[i].Status = types.OrderStatusPaid
		}
	}
	return nil
}

func (m *memOrderRepo) ListAll(_ context.Context) ([]types.OrderReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.OrderReport, 0, len(m.lines))
	for _, line := range m.lines {
		out = append(out, types.OrderReport{OrderID: line.OrderID, Qty: line.Qty, Amount: line.Amount, Status: line.Status})
	}
	return out, nil
}

type memPaymentRepo struct {
	mu       sync.Mutex
	payments []types.Payment
}

func (m *memPaymentRepo) Create(_ context.Context, payment types.Payment) (types.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment.ID = len(m.payments) + 1
	m.payments = append(m.payments, payment)
	return payment, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *capturePublisher) Publish(_ context.Context, topic string, _ []byte, _ map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return "msg-1", nil
}

func (p *capturePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

func newOrderRouter() (*chi.Mux, *memOrderRepo, *capturePublisher) {
	orders := &memOrderRepo{}
	payments := &memPaymentRepo{}
	publisher := &capturePublisher{}
	orderService := services.NewOrderService(orders, payments, publisher)

	router := chi.NewRouter()
	router.Route("/orders", func(r chi.Router) {
		OrderRouter(r, orderService, nil)
	})
	router.Post("/checkout", NewOrderHandler(orderService).Checkout)
	return router, orders, publisher
}

func TestPlaceOrder(t *testing.T) {
	router, orders, publisher := newOrderRouter()

	lines := []OrderLineRequest{
		{ProductID: 1, UserID: 2, TotalPrice: 39.98, Qty: 2},
		{ProductID: 3, UserID: 2, TotalPrice: 10, Qty: 1},
	}
	rec := postJSON(t, router, "/orders", lines)
	if rec.Code != http.StatusOK {
		t.Fatalf("place status %d: %s", rec.Code, rec.Body.String())
	}
	placed := decodeBody[OrderPlacedResponse](t, rec)
	if !strings.HasPrefix(placed.OrderID, "nova-") {
		t.Fatalf("unexpected order id: %q", placed.OrderID)
	}

	orders.mu.Lock()
	defer orders.mu.Unlock()
	if len(orders.lines) != 2 {
		t.Fatalf("expected 2 stored lines, got %d", len(orders.lines))
	}
	for _, line := range orders.lines {
		if line.OrderID != placed.OrderID {
			t.Fatalf("line order id %q, want %q", line.OrderID, placed.OrderID)
		}
		if line.Status != types.OrderStatusPending {
			t.Fatalf("line status %q, want %q", line.Status, types.OrderStatusPending)
		}
	}

	if topics := publisher.published(); len(topics) != 1 || topics[0] != events.TopicOrderPlaced {
		t.Fatalf("unexpected published topics: %v", topics)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	router, _, _ := newOrderRouter()

	rec := postJSON(t, router, "/orders", []OrderLineRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty order, got %d", rec.Code)
	}

	rec = postJSON(t, router, "/orders", []OrderLineRequest{{ProductID: 1, Qty: 1}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", rec.Code)
	}
}

func TestOrdersTotalAndStatus(t *testing.T) {
	router, _, _ := newOrderRouter()

	rec := postJSON(t, router, "/orders", []OrderLineRequest{
		{ProductID: 1, UserID: 2, TotalPrice: 25, Qty: 1},
		{ProductID: 4, UserID: 2, TotalPrice: 75, Qty: 3},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("place status %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/orders/user/2/total")
	if rec.Code != http.StatusOK {
		t.Fatalf("total status %d", rec.Code)
	}
	if got := decodeBody[totalResponse](t, rec); got.Result["total_amount"] != 100 {
		t.Fatalf("total %v, want 100", got.Result["total_amount"])
	}

	rec = doRequest(router, http.MethodPut, "/orders/user/2/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status update %d: %s", rec.Code, rec.Body.String())
	}
	if status := decodeBody[StatusResponse](t, rec); status.Status != "updated" {
		t.Fatalf("unexpected status payload: %+v", status)
	}

	// Paid lines no longer count toward the pending total.
	rec = doRequest(router, http.MethodGet, "/orders/user/2/total")
	if got := decodeBody[totalResponse](t, rec); got.Result["total_amount"] != 0 {
		t.Fatalf("total after pay %v, want 0", got.Result["total_amount"])
	}
}

type totalResponse struct {
	Result map[string]float64 `json:"Result"`
}

func TestCheckout(t *testing.T) {
	router, _, publisher := newOrderRouter()

	rec := postJSON(t, router, "/checkout", CheckoutRequest{
		PaymentMethod: "card",
		CardNumber:    "4111111111111111",
		TotalAmount:   100,
		UserID:        2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout status %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[CheckoutResponse](t, rec)
	if !strings.HasPrefix(resp.TransactionID, "nova-") {
		t.Fatalf("unexpected transaction id: %q", resp.TransactionID)
	}

	if topics := publisher.published(); len(topics) != 1 || topics[0] != events.TopicPaymentCaptured {
		t.Fatalf("unexpected published topics: %v", topics)
	}
}

func TestCheckoutValidation(t *testing.T) {
	router, _, _ := newOrderRouter()

	rec := postJSON(t, router, "/checkout", CheckoutRequest{PaymentMethod: "card"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if status := decodeBody[StatusResponse](t, rec); status.Message != "All fields are required" {
		t.Fatalf("unexpected message: %q", status.Message)
	}

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", rec.Code)
	}
}
