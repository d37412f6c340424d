package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/pkg/logger"
)

// CartHandler provides HTTP handlers for users' carts.
type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CartRouter registers cart routes on the given router.
func CartRouter(r chi.Router, cartService *services.CartService) {
	handler := NewCartHandler(cartService)

	r.Post("/", handler.Add)
	r.Get("/{userID}", handler.ListByUser)
	r.Get("/{userID}/count", handler.Count)
	r.Delete("/{userID}", handler.Clear)
	r.Delete("/{productID}/{userID}", handler.Remove)
}

// Add puts a product into the user's cart; adding twice reports exists.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req SaveItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	if err := h.cartService.Add(r.Context(), req.UserID, req.ProductID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeJSON(w, http.StatusOK, SavedResponse{Exists: true})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to add cart item")
		writeStatus(w, http.StatusInternalServerError, "error", "Server error")
		return
	}

	writeJSON(w, http.StatusOK, SavedResponse{Success: true})
}

// ListByUser returns the cart contents joined with the catalog.
func (h *CartHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	items, err := h.cartService.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to fetch user cart")
		writeStatus(w, http.StatusInternalServerError, "error", "Server error")
		return
	}
	writeJSON(w, http.StatusOK, ItemsResponse{Success: true, Result: items})
}

// Count returns how many products are in the user's cart.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	count, err := h.cartService.CountByUser(r.Context(), userID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to count cart items")
		writeStatus(w, http.StatusInternalServerError, "error", "Server error")
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Status: "Success", Result: map[string]int{"cart": count}})
}

// Clear empties the user's cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, SavedResponse{Message: "No items found in the cart for this user"})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to clear cart")
		writeJSON(w, http.StatusInternalServerError, SavedResponse{Message: "Failed to clear the cart"})
		return
	}

	writeJSON(w, http.StatusOK, SavedResponse{Success: true, Message: "Cart cleared successfully"})
}

// Remove deletes one product from the cart.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.cartService.Remove(r.Context(), userID, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, SavedResponse{Message: "Cart item not found."})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to remove cart item")
		writeStatus(w, http.StatusInternalServerError, "error", "Server error")
		return
	}

	writeJSON(w, http.StatusOK, SavedResponse{Success: true, Message: "Product successfully removed from cart."})
}
