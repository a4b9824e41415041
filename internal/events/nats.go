package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

const subjectPrefix = "auction.events."

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("auctiondesk"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsPublisher{conn: conn}, nil
}

// Publish sends the event on auction.events.<auction id>; the auctioneer
// travels in a header so consumers can route without decoding the body.
func (p *NatsPublisher) Publish(_ context.Context, auctioneerID string, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := nats.NewMsg(subjectPrefix + e.AuctionID)
	msg.Header.Set("Auctioneer-Id", auctioneerID)
	msg.Data = data
	return p.conn.PublishMsg(msg)
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}
