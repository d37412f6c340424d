package services

import (
	"context"

	"github.com/nsmthethwa44/Technova-API/types"
)

// ProductRepository defines persistence operations for catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, product types.Product) (types.Product, error)
	List(ctx context.Context) ([]types.Product, error)
	Get(ctx context.Context, id int) (types.Product, error)
}

// ProductService encapsulates catalog use-cases.
type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, product types.Product) (types.Product, error) {
	return s.repo.Create(ctx, product)
}

func (s *ProductService) List(ctx context.Context) ([]types.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int) (types.Product, error) {
	return s.repo.Get(ctx, id)
}
