package types

import "time"

// Order statuses.
const (
	OrderStatusPending = "Pending"
	OrderStatusPaid    = "Paid"
)

// Order is one line of a placed order. Lines placed together share the
// same public OrderID.
type Order struct {
	ID        int       `json:"id" db:"id"`
	ProductID int       `json:"product_id" db:"product_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Qty       int       `json:"qty" db:"qty"`
	OrderID   string    `json:"order_id" db:"order_id"`
	Status    string    `json:"status" db:"status"`
	Date      time.Time `json:"date" db:"date"`
}

// UserOrder is the per-customer pending order projection (order line
// joined with its product).
type UserOrder struct {
	ProductID int     `json:"id"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Qty       int     `json:"qty"`
	Amount    float64 `json:"amount"`
}

// OrderReport is one row of the admin all-orders report: the order line
// joined with its product and the buying user.
type OrderReport struct {
	Qty       int       `json:"qty"`
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	Image     string    `json:"image"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	UserPhoto string    `json:"photo"`
	UserName  string    `json:"name"`
}

// Payment records a claimed payment for a user's pending orders. The
// backend does not talk to a payment processor; it only records what the
// client asserts.
type Payment struct {
	ID            int       `json:"id" db:"id"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	CardNumber    string    `json:"-" db:"card_number"`
	UserID        int       `json:"user_id" db:"user_id"`
	TotalAmount   float64   `json:"total_amount" db:"total_amount"`
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
