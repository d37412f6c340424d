package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/types"
)

type memCartRepo struct {
	mu    sync.Mutex
	items map[savedKey]int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: make(map[savedKey]int)}
}

func (m *memCartRepo) Add(_ context.Context, userID, productID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := savedKey{userID, productID}
	if _, ok := m.items[key]; ok {
		return store.ErrConflict
	}
	m.items[key] = 1
	return nil
}

func (m *memCartRepo) ListByUser(_ context.Context, userID int) ([]types.SavedProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.SavedProduct
	for key, qty := range m.items {
		if key.userID == userID {
			out = append(out, types.SavedProduct{ID: key.productID, Qty: qty})
		}
	}
	return out, nil
}

func (m *memCartRepo) Remove(_ context.Context, userID, productID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := savedKey{userID, productID}
	if _, ok := m.items[key]; !ok {
		return store.ErrNotFound
	}
	delete(m.items, key)
	return nil
}

func (m *memCartRepo) Clear(_ context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cleared := false
	for key := range m.items {
		if key.userID == userID {
			delete(m.items, key)
			cleared = true
		}
	}
	if !cleared {
		return store.ErrNotFound
	}
	return nil
}

func (m *memCartRepo) CountByUser(_ context.Context, userID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for key := range m.items {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

func newCartRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Route("/cart", func(r chi.Router) {
		CartRouter(r, services.NewCartService(newMemCartRepo()))
	})
	return router
}

func TestCartAddAndCount(t *testing.T) {
	router := newCartRouter()

	rec := postJSON(t, router, "/cart", SaveItemRequest{ProductID: 5, UserID: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, router, "/cart", SaveItemRequest{ProductID: 5, UserID: 2})
	if saved := decodeBody[SavedResponse](t, rec); !saved.Exists {
		t.Fatalf("expected exists on repeat add: %+v", saved)
	}

	rec = doRequest(router, http.MethodGet, "/cart/2/count")
	if rec.Code != http.StatusOK {
		t.Fatalf("count status %d", rec.Code)
	}
	var countResp struct {
		Result map[string]int `json:"Result"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&countResp); err != nil {
		t.Fatalf("decode count: %v", err)
	}
	if countResp.Result["cart"] != 1 {
		t.Fatalf("expected 1 cart item, got %d", countResp.Result["cart"])
	}
}

func TestCartClear(t *testing.T) {
	router := newCartRouter()

	for _, productID := range []int{5, 6} {
		rec := postJSON(t, router, "/cart", SaveItemRequest{ProductID: productID, UserID: 2})
		if rec.Code != http.StatusOK {
			t.Fatalf("add status %d", rec.Code)
		}
	}

	rec := doRequest(router, http.MethodDelete, "/cart/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status %d: %s", rec.Code, rec.Body.String())
	}

	// Clearing an already empty cart reports not found.
	rec = doRequest(router, http.MethodDelete, "/cart/2")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on empty clear, got %d", rec.Code)
	}
}

func TestCartRemoveSingleItem(t *testing.T) {
	router := newCartRouter()

	rec := postJSON(t, router, "/cart", SaveItemRequest{ProductID: 5, UserID: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d", rec.Code)
	}

	rec = doRequest(router, http.MethodDelete, "/cart/5/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodDelete, "/cart/5/2")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat remove, got %d", rec.Code)
	}
}
