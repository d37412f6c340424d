package types

import "time"

// Product is one catalog entry.
type Product struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Category    string    `json:"category" db:"category"`
	Price       float64   `json:"price" db:"price"`
	Qty         int       `json:"qty" db:"qty"`
	Warrant     string    `json:"warrant" db:"warrant"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	Date        time.Time `json:"date" db:"date"`
}

// SavedProduct is the product projection returned by wishlist and cart
// listings (a join of products with the saving row).
type SavedProduct struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Image    string    `json:"image"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`

	// Qty is only populated for cart rows.
	Qty int `json:"qty,omitempty"`
}
