package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"auctiondesk/internal/auctionview"
)

var ErrUnknownEvent = errors.New("unknown_event")

// ConnContext is the per-connection state handed to every handler.
type ConnContext struct {
	AuctioneerID string

	mu     sync.Mutex
	filter auctionview.Filter
}

func (c *ConnContext) Filter() auctionview.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *ConnContext) SetFilter(f auctionview.Filter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

type rawHandler func(ctx context.Context, c *ConnContext, body json.RawMessage) (any, error)

// Router maps an event name to its handler, like gin.Engine does for paths.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]rawHandler
}

func NewRouter() *Router { return &Router{handlers: make(map[string]rawHandler)} }

// Register binds an event to a strongly typed handler.
func Register[Req any, Res any](
	r *Router,
	event string,
	h func(ctx context.Context, c *ConnContext, req Req) (Res, error),
) {
	if event == "" {
		panic("ws router: empty event")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[event] = func(ctx context.Context, c *ConnContext, body json.RawMessage) (any, error) {
		var req Req
		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				return nil, err
			}
		}
		return h(ctx, c, req)
	}
}

func (r *Router) dispatch(ctx context.Context, c *ConnContext, env Envelope) (any, error) {
	r.mu.RLock()
	h, ok := r.handlers[env.Event]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownEvent
	}
	return h(ctx, c, env.Body)
}
