// Package events announces auction lifecycle changes to whoever is listening:
// dashboards through redis pub/sub and archival consumers through NATS.
package events

import (
	"context"
	"errors"
	"time"

	"auctiondesk/internal/models"
)

const (
	EventStateChanged = "state_changed"
	EventCreated      = "created"
	EventUpdated      = "updated"
	EventDeleted      = "deleted"
)

type Event struct {
	Event     string        `json:"event"`
	AuctionID string        `json:"auction_id"`
	From      models.Status `json:"from,omitempty"`
	To        models.Status `json:"to,omitempty"`
	Reason    string        `json:"reason,omitempty"`
	At        time.Time     `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, auctioneerID string, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, Event) error { return nil }

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, auctioneerID string, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, auctioneerID, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
