package services

import (
	"context"

	"github.com/nsmthethwa44/Technova-API/types"
)

// CartRepository defines persistence operations for carts.
type CartRepository interface {
	Add(ctx context.Context, userID, productID int) error
	ListByUser(ctx context.Context, userID int) ([]types.SavedProduct, error)
	Remove(ctx context.Context, userID, productID int) error
	Clear(ctx context.Context, userID int) error
	CountByUser(ctx context.Context, userID int) (int, error)
}

// CartService encapsulates cart use-cases.
type CartService struct {
	repo CartRepository
}

func NewCartService(repo CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) Add(ctx context.Context, userID, productID int) error {
	return s.repo.Add(ctx, userID, productID)
}

func (s *CartService) ListByUser(ctx context.Context, userID int) ([]types.SavedProduct, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, productID int) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID int) error {
	return s.repo.Clear(ctx, userID)
}

func (s *CartService) CountByUser(ctx context.Context, userID int) (int, error) {
	return s.repo.CountByUser(ctx, userID)
}
