package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"folio-be/internal/entities"
)

// ErrNotFound is returned when a lookup matches no row. Services decide how
// it surfaces: login folds it into the credentials error, getUserData maps
// it to a 404.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(email, passwordHash, fullName string, balance float64) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
	UpdateBalance(id string, balance float64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(email, passwordHash, fullName string, balance float64) (*entities.User, error) {
	query := `
		INSERT INTO users (email, password_hash, full_name, balance, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, email, password_hash, full_name, balance, created_at
	`

	var user entities.User
	err := r.db.QueryRow(query, email, passwordHash, fullName, balance).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Balance,
		&user.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, balance, created_at
		FROM users
		WHERE email = $1
	`

	var user entities.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Balance,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(id string) (*entities.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, balance, created_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Balance,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// UpdateBalance overwrites the stored balance unconditionally. Last write
// wins; there is no version token or read-modify-write cycle.
func (r *userRepository) UpdateBalance(id string, balance float64) error {
	query := `UPDATE users SET balance = $1 WHERE id = $2`

	if _, err := r.db.Exec(query, balance, id); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	return nil
}
