package http_server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"auctiondesk/internal/http/auctioneerhandler"
	"auctiondesk/internal/http/auctionhandler"
	"auctiondesk/internal/http/vehiclehandler"
	"auctiondesk/internal/services/auction"
	"auctiondesk/internal/services/auctioneer"
	"auctiondesk/internal/services/vehicle"
	"auctiondesk/internal/ws"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abrar71/swaggerfilesv2" // swagger embed files
)

// Services bundles what the REST routes are served from.
type Services struct {
	View       auctionhandler.View
	Auctions   auction.IAuctionService
	Vehicles   vehicle.IVehicleService
	Auctioneer auctioneer.IAuctioneerService
}

type httpServer struct {
	listenPort   uint16
	auctioneerID string
	srv          http.Server
	ln           net.Listener
	services     Services
	wsSrv        *ws.WsServer
	ctx          context.Context
}

func NewHttpServer(ctx context.Context, listenPort uint16, auctioneerID string, wsSrv *ws.WsServer, services Services) *httpServer {
	return &httpServer{
		listenPort:   listenPort,
		auctioneerID: auctioneerID,
		wsSrv:        wsSrv,
		services:     services,
		ctx:          ctx,
	}
}

// Handler builds the gin engine with every route mounted.
func (h *httpServer) Handler() http.Handler {
	routerEngine := gin.New()

	// Swagger UI and API specs
	routerEngine.StaticFS("/swagger-apis", http.FS(swaggerfilesv2.FS))
	routerEngine.Static("/api-specs", "api_specs")

	routerEngine.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))
	routerEngine.Use(ActorMiddleware(h.auctioneerID))

	// websocket endpoint
	routerEngine.GET("/ws", h.wsSrv.Handle)

	// REST API
	auctionhandler.New(h.services.View, h.services.Auctions).Register(routerEngine)
	vehiclehandler.New(h.services.Vehicles).Register(routerEngine)
	auctioneerhandler.New(h.services.Auctioneer).Register(routerEngine)

	return routerEngine
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	h.srv = http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	err = h.srv.Serve(h.ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(h.ctx), 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err
	}
	return nil
}
