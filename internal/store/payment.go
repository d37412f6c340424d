package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/nsmthethwa44/Technova-API/types"
)

// PaymentRepository handles persistence for recorded payments.
type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment types.Payment) (types.Payment, error) {
	payment.CreatedAt = time.Now()

	const query = `
		INSERT INTO payments (payment_method, card_number, user_id, total_amount, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		payment.PaymentMethod,
		payment.CardNumber,
		payment.UserID,
		payment.TotalAmount,
		payment.TransactionID,
		payment.CreatedAt,
	).Scan(&payment.ID); err != nil {
		return types.Payment{}, err
	}
	return payment, nil
}
