package ws

import (
	"context"
	"encoding/json"

	"auctiondesk/internal/events"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SubscribeRedisAuctionEvents fans events published by any instance out to
// the dashboards connected to this one. It blocks until ctx ends.
func SubscribeRedisAuctionEvents(ctx context.Context, rdb *redis.Client, hub *Hub) {
	pubsub := rdb.PSubscribe(ctx, events.ChannelPattern)
	defer pubsub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			auctioneerID, ok := events.AuctioneerFromChannel(m.Channel)
			if !ok {
				continue
			}
			wrapped, err := wrapEvent(m.Payload)
			if err != nil {
				zap.L().Warn("ws.wrap_event_failed", zap.String("channel", m.Channel), zap.Error(err))
				continue
			}
			hub.Broadcast(auctioneerID, wrapped)
		}
	}
}

// wrapEvent turns an events.Event payload into
//
//	{"event":"auctions/<event>","body":{...}}
func wrapEvent(payload string) ([]byte, error) {
	var e events.Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return nil, err
	}
	evt := e.Event
	if evt == "" {
		evt = "unknown"
	}
	return json.Marshal(Envelope{Event: "auctions/" + evt, Body: json.RawMessage(payload)})
}
