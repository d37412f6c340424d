package store

import (
	"context"
	"database/sql"

	"github.com/nsmthethwa44/Technova-API/types"
)

// CartRepository handles persistence for users' carts.
type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Add puts a product into a user's cart. Returns ErrConflict when the
// product is already in the cart.
func (r *CartRepository) Add(ctx context.Context, userID, productID int) error {
	const query = `INSERT INTO cart (user_id, product_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID int) ([]types.SavedProduct, error) {
	const query = `
		SELECT p.id, p.title, p.price, COALESCE(p.image, ''), p.category, p.date, c.qty
		FROM products p
		JOIN cart c ON p.id = c.product_id
		WHERE c.user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.SavedProduct
	for rows.Next() {
		var item types.SavedProduct
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Price,
			&item.Image,
			&item.Category,
			&item.Date,
			&item.Qty,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, productID int) error {
	const query = `DELETE FROM cart WHERE product_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, productID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear empties a user's cart. Returns ErrNotFound when there was
// nothing to clear.
func (r *CartRepository) Clear(ctx context.Context, userID int) error {
	const query = `DELETE FROM cart WHERE user_id = $1`
	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	const query = `SELECT COUNT(*) FROM cart WHERE user_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
