package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nsmthethwa44/Technova-API/types"
)

// ProductRepository handles persistence for catalog entries.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product types.Product) (types.Product, error) {
	product.Date = time.Now()

	const query = `
		INSERT INTO products (title, category, price, qty, warrant, description, image, date)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		product.Title,
		product.Category,
		product.Price,
		product.Qty,
		product.Warrant,
		product.Description,
		product.Image,
		product.Date,
	).Scan(&product.ID); err != nil {
		return types.Product{}, err
	}
	return product, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]types.Product, error) {
	const query = `
		SELECT id, title, category, price, qty, COALESCE(warrant, ''), COALESCE(description, ''), COALESCE(image, ''), date
		FROM products
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []types.Product
	for rows.Next() {
		var product types.Product
		if err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Category,
			&product.Price,
			&product.Qty,
			&product.Warrant,
			&product.Description,
			&product.Image,
			&product.Date,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int) (types.Product, error) {
	const query = `
		SELECT id, title, category, price, qty, COALESCE(warrant, ''), COALESCE(description, ''), COALESCE(image, ''), date
		FROM products
		WHERE id = $1`
	var product types.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Title,
		&product.Category,
		&product.Price,
		&product.Qty,
		&product.Warrant,
		&product.Description,
		&product.Image,
		&product.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Product{}, ErrNotFound
		}
		return types.Product{}, err
	}
	return product, nil
}
