package models

import "github.com/shopspring/decimal"

const UnknownBidder = "Usuario desconocido"

// Bid is a read-only view of a puja row. Date and Time are kept as the store
// renders them (YYYY-MM-DD and HH:MM:SS).
type Bid struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	BidderID   string          `json:"bidder_id"`
	BidderName string          `json:"bidder_name"`
}
