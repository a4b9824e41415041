package events

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "auctioneer:"

// Channel is the pub/sub channel carrying the events of one auctioneer.
func Channel(auctioneerID string) string {
	return channelPrefix + auctioneerID + ":events"
}

// ChannelPattern matches the channels of every auctioneer.
const ChannelPattern = channelPrefix + "*:events"

// AuctioneerFromChannel extracts the auctioneer id from a Channel name.
func AuctioneerFromChannel(channel string) (string, bool) {
	id, ok := strings.CutPrefix(channel, channelPrefix)
	if !ok {
		return "", false
	}
	id, ok = strings.CutSuffix(id, ":events")
	return id, ok && id != ""
}

type RedisPublisher struct {
	rdc *redis.Client
}

func NewRedisPublisher(rdc *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdc: rdc}
}

func (p *RedisPublisher) Publish(ctx context.Context, auctioneerID string, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.rdc.Publish(ctx, Channel(auctioneerID), payload).Err()
}
