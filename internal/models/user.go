package models

import "time"

// User represents an account holder.
// PasswordHash is a bcrypt hash; the raw password never reaches storage.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
