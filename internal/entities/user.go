package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID           string    `json:"id"` // UUID
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Don't expose password hash in JSON
	FullName     string    `json:"full_name"`
	Balance      float64   `json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
}
