package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/pkg/logger"
)

// SaveItemRequest is the payload for adding a product to a wishlist or cart.
type SaveItemRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
	UserID    int `json:"user_id" validate:"required,min=1"`
}

// SavedResponse reports the outcome of a save: Exists is set when the
// product was already saved.
type SavedResponse struct {
	Success bool   `json:"success,omitempty"`
	Exists  bool   `json:"exists,omitempty"`
	Message string `json:"message,omitempty"`
}

// ItemsResponse wraps a wishlist or cart listing.
type ItemsResponse struct {
	Success bool `json:"success"`
	Result  any  `json:"Result"`
}

// WishlistHandler provides HTTP handlers for users' saved products.
type WishlistHandler struct {
	wishlistService *services.WishlistService
}

func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// WishlistRouter registers wishlist routes on the given router.
func WishlistRouter(r chi.Router, wishlistService *services.WishlistService) {
	handler := NewWishlistHandler(wishlistService)

	r.Post("/", handler.Add)
	r.Get("/{userID}", handler.ListByUser)
	r.Get("/{userID}/count", handler.Count)
	r.Delete("/{productID}/{userID}", handler.Remove)
}

// Add saves a product to the user's wishlist; saving twice reports
// exists instead of failing.
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req SaveItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	if err := h.wishlistService.Add(r.Context(), req.UserID, req.ProductID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeJSON(w, http.StatusOK, SavedResponse{Exists: true})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to add wishlist item")
		writeStatus(w, http.StatusInternalServerError, "error", "Server error")
		return
	}

	writeJSON(w, http.StatusOK, SavedResponse{Success: true})
}

// ListByUser returns the saved products of one user, joined with the catalog.
func (h *WishlistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	items, err := h.wishlistService.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to fetch user wishlist")
		writeStatus(w, http.StatusInternalServerError, "error", "Server error")
		return
	}
	writeJSON(w, http.StatusOK, ItemsResponse{Success: true, Result: items})
}

// Count returns how many products the user has saved.
func (h *WishlistHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	count, err := h.wishlistService.CountByUser(r.Context(), userID)
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to count wishlist items")
		writeStatus(w, http.StatusInternalServerError, "error", "Server error")
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Status: "Success", Result: map[string]int{"likes": count}})
}

// Remove deletes one saved product.
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.wishlistService.Remove(r.Context(), userID, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, SavedResponse{Message: "Wishlist not found."})
			return
		}
		logger.Get().Error().Err(err).Msg("failed to remove wishlist item")
		writeStatus(w, http.StatusInternalServerError, "error", "Server error")
		return
	}

	writeJSON(w, http.StatusOK, SavedResponse{Success: true, Message: "Product successfully removed."})
}
