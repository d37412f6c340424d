package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nsmthethwa44/Technova-API/internal/services"
	"github.com/nsmthethwa44/Technova-API/internal/store"
	"github.com/nsmthethwa44/Technova-API/types"
)

type savedKey struct {
	userID    int
	productID int
}

type memWishlistRepo struct {
	mu    sync.Mutex
	items map[savedKey]struct{}
}

func newMemWishlistRepo() *memWishlistRepo {
	return &memWishlistRepo{items: make(map[savedKey]struct{})}
}

func (m *memWishlistRepo) Add(_ context.Context, userID, productID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := savedKey{userID, productID}
	if _, ok := m.items[key]; ok {
		return store.ErrConflict
	}
	m.items[key] = struct{}{}
	return nil
}

func (m *memWishlistRepo) ListByUser(_ context.Context, userID int) ([]types.SavedProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.SavedProduct
	for key := range m.items {
		if key.userID == userID {
			out = append(out, types.SavedProduct{ID: key.productID})
		}
	}
	return out, nil
}

func (m *memWishlistRepo) Remove(_ context.Context, userID, productID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := savedKey{userID, productID}
	if _, ok := m.items[key]; !ok {
		return store.ErrNotFound
	}
	delete(m.items, key)
	return nil
}

func (m *memWishlistRepo) CountByUser(_ context.Context, userID int) (int, error) {
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

func newWishlistRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Route("/wishlist", func(r chi.Router) {
		WishlistRouter(r, services.NewWishlistService(newMemWishlistRepo()))
	})
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doRequest(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWishlistAddReportsExists(t *testing.T) {
	router := newWishlistRouter()

	payload := SaveItemRequest{ProductID: 10, UserID: 1}
	rec := postJSON(t, router, "/wishlist", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d: %s", rec.Code, rec.Body.String())
	}
	if saved := decodeBody[SavedResponse](t, rec); !saved.Success || saved.Exists {
		t.Fatalf("unexpected first add response: %+v", saved)
	}

	rec = postJSON(t, router, "/wishlist", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat add status %d", rec.Code)
	}
	if saved := decodeBody[SavedResponse](t, rec); !saved.Exists {
		t.Fatalf("expected exists on repeat add: %+v", saved)
	}
}

func TestWishlistAddValidation(t *testing.T) {
	router := newWishlistRouter()

	rec := postJSON(t, router, "/wishlist", SaveItemRequest{ProductID: 10})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without user id, got %d", rec.Code)
	}
}

func TestWishlistCountAndRemove(t *testing.T) {
	router := newWishlistRouter()

	for _, productID := range []int{10, 11, 12} {
		rec := postJSON(t, router, "/wishlist", SaveItemRequest{ProductID: productID, UserID: 1})
		if rec.Code != http.StatusOK {
			t.Fatalf("add status %d", rec.Code)
		}
	}

	rec := doRequest(router, http.MethodGet, "/wishlist/1/count")
	if rec.Code != http.StatusOK {
		t.Fatalf("count status %d", rec.Code)
	}
	var countResp struct {
		Result map[string]int `json:"Result"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&countResp); err != nil {
		t.Fatalf("decode count: %v", err)
	}
	if countResp.Result["likes"] != 3 {
		t.Fatalf("expected 3 likes, got %d", countResp.Result["likes"])
	}

	rec = doRequest(router, http.MethodDelete, "/wishlist/11/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodDelete, "/wishlist/11/1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat remove, got %d", rec.Code)
	}
}
