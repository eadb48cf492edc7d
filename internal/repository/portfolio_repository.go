package repository

import (
	"database/sql"
	"fmt"

	"folio-be/internal/entities"
)

// PortfolioRepository defines the interface for portfolio database operations.
// The mutation unit is the entire holdings set for one user; there is no
// per-row update.
type PortfolioRepository interface {
	FindByUserID(userID string) ([]*entities.Holding, error)
	ReplaceForUser(userID string, holdings []*entities.Holding) error
}

type portfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *sql.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

// FindByUserID returns every holding owned by a user
func (r *portfolioRepository) FindByUserID(userID string) ([]*entities.Holding, error) {
	query := `
		SELECT id, user_id, product_id, product_name, quantity, avg_buy_price, total_invested, created_at, updated_at
		FROM portfolio_holdings
		WHERE user_id = $1
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*entities.Holding
	for rows.Next() {
		var h entities.Holding
		err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.ProductID,
			&h.ProductName,
			&h.Quantity,
			&h.AvgBuyPrice,
			&h.TotalInvested,
			&h.CreatedAt,
			&h.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// ReplaceForUser deletes every holding owned by the user and inserts the
// given set in order, inside a single transaction. A failure partway through
// rolls the whole replace back, so the previous portfolio survives intact.
func (r *portfolioRepository) ReplaceForUser(userID string, holdings []*entities.Holding) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM portfolio_holdings WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear holdings: %w", err)
	}

	insert := `
		INSERT INTO portfolio_holdings (user_id, product_id, product_name, quantity, avg_buy_price, total_invested)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, h := range holdings {
		_, err := tx.Exec(insert, userID, h.ProductID, h.ProductName, h.Quantity, h.AvgBuyPrice, h.TotalInvested)
		if err != nil {
			return fmt.Errorf("failed to insert holding %s: %w", h.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace: %w", err)
	}

	return nil
}
