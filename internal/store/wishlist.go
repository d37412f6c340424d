package store

import (
	"context"
	"database/sql"

	"github.com/nsmthethwa44/Technova-API/types"
)

// WishlistRepository handles persistence for users' saved products.
type WishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add saves a product to a user's wishlist. Returns ErrConflict when the
// pair is already saved.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID int) error {
	const query = `INSERT INTO wishlist (user_id, product_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID int) ([]types.SavedProduct, error) {
	const query = `
		SELECT p.id, p.title, p.price, COALESCE(p.image, ''), p.category, p.date
		FROM products p
		JOIN wishlist w ON p.id = w.product_id
		WHERE w.user_id = $1`
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

func (r *WishlistRepository) Remove(ctx context.Context, userID, productID int) error {
	const query = `DELETE FROM wishlist WHERE product_id = $1 AND user_id = $2`
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

func (r *WishlistRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	const query = `SELECT COUNT(*) FROM wishlist WHERE user_id = $1`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
