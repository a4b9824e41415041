// Package actor carries the auctioneer acting on a request through its
// context. Authentication is stubbed, so the id comes from configuration and
// is installed by the HTTP middleware and the background reconciler.
package actor

import (
	"context"
	"errors"
)

var ErrNoActor = errors.New("no auctioneer in context")

type ctxKey struct{}

func WithAuctioneer(ctx context.Context, auctioneerID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, auctioneerID)
}

// Auctioneer returns the id installed by WithAuctioneer.
func Auctioneer(ctx context.Context) (string, error) {
	id, _ := ctx.Value(ctxKey{}).(string)
	if id == "" {
		return "", ErrNoActor
	}
	return id, nil
}
