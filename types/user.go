package types

import "time"

// User represents a registered shop account.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. Stored lower-cased; unique.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization level within the shop
	// (e.g., "admin", "customer").
	Role string `json:"role" db:"role"`

	// Photo is the object storage key of the profile photo, if any.
	Photo string `json:"photo" db:"photo"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PublicUser is the claim-sized projection of a User embedded in tokens
// and returned by login.
type PublicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Role  string `json:"role"`
}

// Public returns the projection of u that is safe to hand to clients.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
		Role:  u.Role,
	}
}
