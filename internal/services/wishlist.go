package services

import (
	"context"

	"github.com/nsmthethwa44/Technova-API/types"
)

// WishlistRepository defines persistence operations for saved products.
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID int) error
	ListByUser(ctx context.Context, userID int) ([]types.SavedProduct, error)
	Remove(ctx context.Context, userID, productID int) error
	CountByUser(ctx context.Context, userID int) (int, error)
}

// WishlistService encapsulates wishlist use-cases.
type WishlistService struct {
	repo WishlistRepository
}

func NewWishlistService(repo WishlistRepository) *WishlistService {
	return &WishlistService{repo: repo}
}

func (s *WishlistService) Add(ctx context.Context, userID, productID int) error {
	return s.repo.Add(ctx, userID, productID)
}

func (s *WishlistService) ListByUser(ctx context.Context, userID int) ([]types.SavedProduct, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID int) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *WishlistService) CountByUser(ctx context.Context, userID int) (int, error) {
	return s.repo.CountByUser(ctx, userID)
}
