// Package reconciler drives the time-based auction transitions from the
// server instead of a browser timer.
package reconciler

import (
	"context"
	"time"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/services/auction"

	"go.uber.org/zap"
)

// View runs one reconciliation pass. Passes are serialised by the view
// itself, so Reload and the reconciler share one lock.
type View interface {
	Reconcile(ctx context.Context) []auction.Transition
	Changes() <-chan struct{}
}

// Run reconciles once immediately, then on every tick and every change of
// the view's auction count, until ctx ends. ctx must carry the auctioneer.
func Run(ctx context.Context, view View, interval time.Duration) {
	if _, err := actor.Auctioneer(ctx); err != nil {
		zap.L().Error("reconciler.no_actor", zap.Error(err))
		return
	}

	pass(ctx, view)

	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			pass(ctx, view)
		case <-view.Changes():
			pass(ctx, view)
		}
	}
}

func pass(ctx context.Context, view View) {
	if done := view.Reconcile(ctx); len(done) > 0 {
		zap.L().Info("reconciler.pass", zap.Int("transitions", len(done)))
	}
}
