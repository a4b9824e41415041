package ws

import (
	"encoding/json"

	"auctiondesk/internal/auctionview"
)

// Envelope wraps every WS frame.
type Envelope struct {
	Event string          `json:"event"` // e.g. "auctions/list"
	Body  json.RawMessage `json:"body,omitempty"`
}

// ListRequest is the body for "auctions/list". The filter it carries is
// remembered for the connection until the next list request.
type ListRequest struct {
	Statuses []string `json:"statuses"`
	From     string   `json:"from"`
	To       string   `json:"to"`
}

// ListResponse answers "auctions/list" and "auctions/reload".
type ListResponse = auctionview.Snapshot

type AckBody struct{}

type ErrorBody struct {
	Error string `json:"error"`
}
