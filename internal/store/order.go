package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/nsmthethwa44/Technova-API/types"
)

// OrderRepository handles persistence for order lines.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateBatch inserts the lines of one placed order. All lines carry the
// same public order id; lines are inserted independently (no cross-line
// transaction).
func (r *OrderRepository) CreateBatch(ctx context.Context, orders []types.Order) error {
	const query = `
		INSERT INTO orders (product_id, user_id, amount, qty, order_id, status, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now()
	for _, order := range orders {
		if order.Status == "" {
			order.Status = types.OrderStatusPending
		}
		if _, err := r.db.ExecContext(
			ctx,
			query,
			order.ProductID,
			order.UserID,
			order.Amount,
			order.Qty,
			order.OrderID,
			order.Status,
			now,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) ListPendingByUser(ctx context.Context, userID int) ([]types.UserOrder, error) {
	const query = `
		SELECT p.id, p.title, COALESCE(p.image, ''), o.qty, o.amount
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.status = 'Pending' AND o.user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []types.UserOrder
	for rows.Next() {
		var order types.UserOrder
		if err := rows.Scan(
			&order.ProductID,
			&order.Title,
			&order.Image,
			&order.Qty,
			&order.Amount,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) TotalPendingAmount(ctx context.Context, userID int) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0)
		FROM orders
		WHERE status = 'Pending' AND user_id = $1`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *OrderRepository) Delete(ctx context.Context, userID, productID int) error {
	const query = `DELETE FROM orders WHERE product_id = $1 AND user_id = $2`
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

// MarkPaid flips all of a user's pending orders to Paid.
func (r *OrderRepository) MarkPaid(ctx context.Context, userID int) error {
	const query = `UPDATE orders SET status = 'Paid' WHERE user_id = $1 AND status = 'Pending'`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// ListAll returns the admin order report: every order line joined with
// its product and the buying user.
func (r *OrderRepository) ListAll(ctx context.Context) ([]types.OrderReport, error) {
	const query = `
		SELECT o.qty, o.order_id, o.amount, o.status, o.date,
			COALESCE(p.image, ''), p.title, p.price,
			COALESCE(u.photo, ''), u.name
		FROM orders o
		LEFT JOIN products p ON p.id = o.product_id
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []types.OrderReport
	for rows.Next() {
		var report types.OrderReport
		if err := rows.Scan(
			&report.Qty,
			&report.OrderID,
			&report.Amount,
			&report.Status,
			&report.Date,
			&report.Image,
			&report.Title,
			&report.Price,
			&report.UserPhoto,
			&report.UserName,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
