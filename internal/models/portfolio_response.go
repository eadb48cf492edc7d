package models

import "time"

// HoldingResponse is one holding row in the external camelCase shape
type HoldingResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	ProductID     string    `json:"productId"`
	ProductName   string    `json:"productName"`
	Quantity      int       `json:"quantity"`
	AvgBuyPrice   float64   `json:"avgBuyPrice"`
	TotalInvested float64   `json:"totalInvested"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
