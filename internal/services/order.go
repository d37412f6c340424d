package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nsmthethwa44/Technova-API/internal/events"
	"github.com/nsmthethwa44/Technova-API/internal/metrics"
	"github.com/nsmthethwa44/Technova-API/pkg/logger"
	"github.com/nsmthethwa44/Technova-API/types"
)

// Public order and transaction ids carry this prefix.
const publicIDPrefix = "nova-"

// OrderRepository defines persistence operations for order lines.
type OrderRepository interface {
	CreateBatch(ctx context.Context, orders []types.Order) error
	ListPendingByUser(ctx context.Context, userID int) ([]types.UserOrder, error)
	TotalPendingAmount(ctx context.Context, userID int) (float64, error)
	Delete(ctx context.Context, userID, productID int) error
	MarkPaid(ctx context.Context, userID int) error
	ListAll(ctx context.Context) ([]types.OrderReport, error)
}

// PaymentRepository defines persistence operations for recorded payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment types.Payment) (types.Payment, error)
}

// Publisher sends domain events to the broker. Satisfied by *mq.Broker.
type Publisher interface {
	Publish(ctx context.Context, topic string, data []byte, attrs map[string]string) (string, error)
}

// OrderService encapsulates order and checkout use-cases. Events are
// published best-effort after the rows are persisted; a broker failure
// is logged, never surfaced to the client.
type OrderService struct {
	orders    OrderRepository
	payments  PaymentRepository
	publisher Publisher
}

func NewOrderService(orders OrderRepository, payments PaymentRepository, publisher Publisher) *OrderService {
	return &OrderService{
		orders:    orders,
		payments:  payments,
		publisher: publisher,
	}
}

// Place persists the lines of one order under a fresh public order id
// and returns that id.
func (s *OrderService) Place(ctx context.Context, lines []types.Order) (string, error) {
	if len(lines) == 0 {
		return "", errors.New("order has no lines")
	}

	orderID := newPublicID()
	var total float64
	userID := lines[0].UserID
	for i := range lines {
		lines[i].OrderID = orderID
		lines[i].Status = types.OrderStatusPending
		total += lines[i].Amount
	}

	if err := s.orders.CreateBatch(ctx, lines); err != nil {
		return "", err
	}
	metrics.OrdersPlacedTotal.Inc()

	s.publish(ctx, events.TopicOrderPlaced, events.OrderPlaced{
		OrderID:   orderID,
		UserID:    userID,
		LineCount: len(lines),
		Total:     total,
		PlacedAt:  time.Now(),
	})

	return orderID, nil
}

// Checkout records the claimed payment under a fresh transaction id.
func (s *OrderService) Checkout(ctx context.Context, payment types.Payment) (types.Payment, error) {
	payment.TransactionID = newPublicID()

	created, err := s.payments.Create(ctx, payment)
	if err != nil {
		return types.Payment{}, err
	}
	metrics.PaymentsRecordedTotal.WithLabelValues(created.PaymentMethod).Inc()

	s.publish(ctx, events.TopicPaymentCaptured, events.PaymentCaptured{
		TransactionID: created.TransactionID,
		UserID:        created.UserID,
		Method:        created.PaymentMethod,
		Amount:        created.TotalAmount,
		CapturedAt:    time.Now(),
	})

	return created, nil
}

func (s *OrderService) ListPendingByUser(ctx context.Context, userID int) ([]types.UserOrder, error) {
	return s.orders.ListPendingByUser(ctx, userID)
}

func (s *OrderService) TotalPendingAmount(ctx context.Context, userID int) (float64, error) {
	return s.orders.TotalPendingAmount(ctx, userID)
}

func (s *OrderService) Delete(ctx context.Context, userID, productID int) error {
	return s.orders.Delete(ctx, userID, productID)
}

func (s *OrderService) MarkPaid(ctx context.Context, userID int) error {
	return s.orders.MarkPaid(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]types.OrderReport, error) {
	return s.orders.ListAll(ctx)
}

func (s *OrderService) publish(ctx context.Context, topic string, event any) {
	if s.publisher == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.Get().Error().Str("topic", topic).Err(err).Msg("marshal event")
		return
	}
	if _, err := s.publisher.Publish(ctx, topic, data, nil); err != nil {
		logger.Get().Error().Str("topic", topic).Err(err).Msg("publish event")
	}
}

func newPublicID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return publicIDPrefix + suffix
}
