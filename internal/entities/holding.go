package entities

import "time"

// Holding represents one line item of a user's portfolio in the database
type Holding struct {
	ID            string    `json:"id"` // UUID
	UserID        string    `json:"user_id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Quantity      int       `json:"quantity"`
	AvgBuyPrice   float64   `json:"avg_buy_price"`
	TotalInvested float64   `json:"total_invested"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
