package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/storage"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/pkg/logger"
	"github.com/nsmthethwa44/Technova-API/types"
)

// ProductHandler provides HTTP handlers for the catalog.
type ProductHandler struct {
	productService *services.ProductService
	media          *storage.Storage
}

func NewProductHandler(productService *services.ProductService, media *storage.Storage) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		media:          media,
	}
}

// ProductRouter registers catalog routes on the given router. Creation
// is gated on the admin role; browsing is public.
func ProductRouter(r chi.Router, productService *services.ProductService, media *storage.Storage, authMiddleware func(http.Handler) http.Handler) {
	handler := NewProductHandler(productService, media)

	r.Get("/", handler.ListProducts)
	r.Get("/{productID}", handler.GetProduct)
	if authMiddleware != nil {
		r.With(authMiddleware, RequireRole(adminRole)).Post("/", handler.CreateProduct)
	} else {
		r.Post("/", handler.CreateProduct)
	}
}

// CreateProduct adds a catalog entry from a multipart form with an
// optional image file.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeStatus(w, http.StatusBadRequest, "error", "invalid form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	category := strings.TrimSpace(r.FormValue("category"))
	if title == "" || category == "" {
		writeStatus(w, http.StatusBadRequest, "error", "title and category are required")
		return
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil || price < 0 {
		writeStatus(w, http.StatusBadRequest, "error", "invalid price")
		return
	}

	qty, err := parseOptionalInt(r.FormValue("qty"))
	if err != nil || qty < 0 {
		writeStatus(w, http.StatusBadRequest, "error", "invalid qty")
		return
	}

	imageKey, err := saveUpload(r.Context(), h.media, r.MultipartForm, "image", "images")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	_, err = h.productService.Create(r.Context(), types.Product{
		Title:       title,
		Category:    category,
		Price:       price,
		Qty:         qty,
		Warrant:     strings.TrimSpace(r.FormValue("warrant")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Image:       imageKey,
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to add new product")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to add new product")
		return
	}

	writeStatus(w, http.StatusOK, "success", "Product successfully added!")
}

// ListProducts returns the catalog, newest first.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("failed to fetch products")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to fetch data")
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{Status: "success", Result: products})
}

// GetProduct returns a single catalog entry.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		writeStatus(w, http.StatusBadRequest, "error", err.Error())
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeStatus(w, http.StatusNotFound, "error", "product not found")
			return
		}
		logger.Get().Error().Err(err).Msg("failed to fetch product details")
		writeStatus(w, http.StatusInternalServerError, "error", "Failed to fetch data")
		return
	}

	writeJSON(w, http.StatusOK, ResultResponse{Status: "Success", Result: product})
}

func parseIDParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

func parseOptionalInt(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
