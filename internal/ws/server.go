package ws

import (
	"context"
	"net/http"
	"time"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/auctionview"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 12 * time.Second
	pingPeriod     = 3 * time.Second // must be < pongWait
	handlerTimeout = 5 * time.Second
	maxFrameSize   = 4096
)

// AuctionView is the part of auctionview.View the socket serves.
type AuctionView interface {
	Snapshot(f auctionview.Filter) auctionview.Snapshot
	Reload(ctx context.Context) auctionview.Snapshot
	Location() *time.Location
}

type WsServer struct {
	hub      *Hub
	router   *Router
	view     AuctionView
	upgrader websocket.Upgrader
}

func NewWsServer(h *Hub, view AuctionView) *WsServer {
	srv := &WsServer{
		hub:    h,
		router: NewRouter(),
		view:   view,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true }, // dashboard is served from another origin in dev
		},
	}
	srv.registerHandlers()
	return srv
}

// Handle upgrades GET /ws and joins the connection to its auctioneer's room.
func (s *WsServer) Handle(ginCtx *gin.Context) {
	auctioneerID, err := actor.Auctioneer(ginCtx.Request.Context())
	if err != nil {
		ginCtx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(maxFrameSize)
	_ = rawConn.SetReadDeadline(time.Now().Add(pongWait))
	rawConn.SetPongHandler(func(string) error {
		return rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	conn := &clientConn{rawConn: rawConn}
	s.hub.Join(auctioneerID, conn)

	if err := conn.writeJSON(map[string]any{
		"event": "auctions/snapshot",
		"body":  s.view.Snapshot(auctionview.Filter{}),
	}); err != nil {
		zap.L().Warn("ws.snapshot", zap.Error(err))
	}

	done := make(chan struct{})
	go s.reader(auctioneerID, conn, done)
	go s.pinger(conn, done)
}

func (s *WsServer) registerHandlers() {
	Register(
		s.router,
		"auctions/list",
		func(ctx context.Context, cc *ConnContext, req ListRequest) (ListResponse, error) {
			f, err := auctionview.ParseFilter(req.Statuses, req.From, req.To, s.view.Location())
			if err != nil {
				return ListResponse{}, err
			}
			cc.SetFilter(f)
			return s.view.Snapshot(f), nil
		},
	)
	Register(
		s.router,
		"auctions/reload",
		func(ctx context.Context, cc *ConnContext, _ AckBody) (ListResponse, error) {
			s.view.Reload(ctx)
			return s.view.Snapshot(cc.Filter()), nil
		},
	)
}

func (s *WsServer) reader(auctioneerID string, conn *clientConn, done chan struct{}) {
	defer func() {
		close(done)
		s.hub.Leave(auctioneerID, conn)
	}()

	cc := &ConnContext{AuctioneerID: auctioneerID}
	base := actor.WithAuctioneer(context.Background(), auctioneerID)

	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			return // client closed or errored
		}

		ctx, cancel := context.WithTimeout(base, handlerTimeout)
		res, err := s.router.dispatch(ctx, cc, env)
		cancel()

		if err != nil {
			_ = conn.writeJSON(map[string]any{
				"event": "error",
				"body":  ErrorBody{Error: err.Error()},
			})
			continue
		}

		reply := map[string]any{"event": env.Event + "-ack"}
		if res != nil {
			reply["body"] = res
		}
		_ = conn.writeJSON(reply)
	}
}

func (s *WsServer) pinger(conn *clientConn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				_ = conn.rawConn.Close()
				return
			}
		}
	}
}
