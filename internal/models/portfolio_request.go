package models

// HoldingItem is one submitted portfolio line item. Numeric fields mirror
// the client payload: quantity is a whole number, prices are decimals.
type HoldingItem struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity"`
	AvgBuyPrice   float64 `json:"avgBuyPrice"`
	TotalInvested float64 `json:"totalInvested"`
}

// Valid reports whether every field of the item is present and truthy.
// Items failing this check are skipped during a replace, not rejected as a
// whole-request error.
func (h HoldingItem) Valid() bool {
	return h.ProductID != "" &&
		h.ProductName != "" &&
		h.Quantity != 0 &&
		h.AvgBuyPrice != 0 &&
		h.TotalInvested != 0
}

// ReplacePortfolioRequest is the POST body for a full portfolio replace
type ReplacePortfolioRequest struct {
	UserID    string        `json:"userId"`
	Portfolio []HoldingItem `json:"portfolio"`
}
