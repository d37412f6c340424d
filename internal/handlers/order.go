package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/pkg/logger"
	"github.com/nsmthethwa44/Technova-API/types"
)

// OrderHandler provides HTTP handlers for orders and checkout.
type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderRouter registers order routes on the given router. The all-orders
// report is gated on the admin role.
func OrderRouter(r chi.Router, orderService *services.OrderService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewOrderHandler(orderService)

	r.Post("/", handler.PlaceOrder)
	if authMiddleware != nil {
		r.With(authMiddleware, RequireRole(adminRole)).Get("/", handler.AllOrders)
	} else {
		r.Get("/", handler.AllOrders)
	}
	r.Get("/user/{userID}", handler.UserOrders)
	r.Get("/user/{userID}/total", handler.TotalAmount)
	r.Put("/user/{userID}/status", handler.UpdateStatus)
	r.Delete("/{productID}/{userID}", handler.DeleteOrder)
}

// OrderLineRequest is one line of a placed order.
type OrderLineRequest struct {
	ProductID  int     `json:"product_id" validate:"required,min=1"`
	UserID     int     `json:"user_id" validate:"required,min=1"`
	TotalPrice float64 `json:"total_price" validate:"required,gt=0"`
	Qty        int     `json:"qty" validate:"required,min=1"`
}

// OrderPlacedResponse carries the generated public order id.
type OrderPlacedResponse struct {
	Status  string `json:"Status"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// PlaceOrder records the lines of one order under a fresh order id.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var reqs []OrderLineRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil || len(reqs) == 0 {
		writeStatus(w, http.StatusBadRequest, "error", "invalid request body")
		return
	}
	for _, req := range reqs {
		if err := validate.Struct(req); err != nil {
			writeStatus(w, http.StatusBadRequest, "error", "missing or invalid fields")
			return
		}
	}

	lines := make([]types.Order, 0, len(reqs))
	for _, req := range reqs {
		lines = append(lines, types.Order{
			ProductID: req.ProductID,
			UserID:    req.UserID,
			Amount:    req.TotalPrice,
			Qty:       req.Qty,
		})
	}

	orderID, err := h.orderService.Place(r.Context(), lines)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to place order")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to place the order.")
		return
	}

	writeJSON(w, http.StatusOK, OrderPlacedResponse{
		Status:  "success",
		Message: "Order placed successfully.",
		OrderID: orderID,
	})
}

// UserOrders returns a customer's pending order lines.
func (h *OrderHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	orders, err := h.orderService.ListPendingByUser(r.Context(), userID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to fetch customer orders")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to get customer orders")
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Status: "success", Result: orders})
}

// TotalAmount returns the sum of a customer's pending order lines.
func (h *OrderHandler) TotalAmount(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	total, err := h.orderService.TotalPendingAmount(r.Context(), userID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to fetch customer total amount")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to get customer total amount")
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Status: "success", Result: map[string]float64{"total_amount": total}})
}

// DeleteOrder removes one pending order line.
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "productID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	if err := h.orderService.Delete(r.Context(), userID, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, SavedResponse{Message: "Failed to delete order."})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to delete order")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to delete order")
		return
	}

	writeStatus(w, http.StatusOK, "success", "Order successfully deleted.")
}

// UpdateStatus flips a customer's pending orders to Paid.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	if err := h.orderService.MarkPaid(r.Context(), userID); err != nil {
		logger.Get().Error().Err(err).Msg("failed to update order status")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to update order status")
		return
	}

	writeStatus(w, http.StatusOK, "updated", "Order status updated")
}

// AllOrders returns the admin order report.
func (h *OrderHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	reports, err := h.orderService.ListAll(r.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to fetch orders")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Status: "success", Result: reports})
}

// CheckoutRequest records a claimed payment. The backend never talks to
// a payment processor.
type CheckoutRequest struct {
	PaymentMethod string  `json:"payment_method" validate:"required"`
	CardNumber    string  `json:"card_number" validate:"required"`
	TotalAmount   float64 `json:"total_amount" validate:"required,gt=0"`
	UserID        int     `json:"user_id" validate:"required,min=1"`
}

// CheckoutResponse carries the generated transaction id.
type CheckoutResponse struct {
	Status        string `json:"Status"`
	TransactionID string `json:"transactionId"`
}

// Checkout validates the claimed payment and records it.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, "error", "All fields are required")
		return
	}

	payment, err := h.orderService.Checkout(r.Context(), types.Payment{
		PaymentMethod: req.PaymentMethod,
		CardNumber:    req.CardNumber,
		TotalAmount:   req.TotalAmount,
		UserID:        req.UserID,
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to process payment")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to process payment")
		return
	}

	writeJSON(w, http.StatusOK, CheckoutResponse{
		Status:        "success",
		TransactionID: payment.TransactionID,
	})
}
