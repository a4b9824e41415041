package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusPublished Status = "Publicada"
	StatusActive    Status = "Activa"
	StatusExpired   Status = "Expirada"
	StatusFinalized Status = "Finalizada"
	StatusCancelled Status = "Cancelada"

	// Client-local while a write is in flight; never persisted.
	StatusPublishing Status = "Publicando..."
	StatusPausing    Status = "Parando..."
	StatusCancelling Status = "Cancelando..."
)

// Statuses lists the persisted statuses in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusPublished,
	StatusActive,
	StatusExpired,
	StatusFinalized,
	StatusCancelled,
}

// Valid reports whether s is one of the persisted statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Auction mirrors a row of the subasta table. CreatedAt is replaced by the
// managing link's creation time when the auction is listed for an auctioneer.
type Auction struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Status          Status          `json:"status"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	StartsAt        *time.Time      `json:"starts_at,omitempty"`
	EndsAt          *time.Time      `json:"ends_at,omitempty"`
	BasePrice       decimal.Decimal `json:"base_price"`
	MinBidIncrement decimal.Decimal `json:"min_bid_increment"`
	MaxParticipants int             `json:"max_participants"`
	Ficha           *string         `json:"ficha"`
	CancelReason    *string         `json:"cancel_reason"`
}

// AuctionUpdate carries the editable columns of an auction.
type AuctionUpdate struct {
	Title           string
	Description     string
	StartsAt        time.Time
	EndsAt          time.Time
	BasePrice       decimal.Decimal
	MinBidIncrement decimal.Decimal
	MaxParticipants int
	Ficha           string
}

// Link attaches an auction to the auctioneer managing it (gestiona table).
type Link struct {
	AuctioneerID string    `json:"auctioneer_id"`
	AuctionID    string    `json:"auction_id"`
	CreatedAt    time.Time `json:"created_at"`
}
