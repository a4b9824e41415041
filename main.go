//go:generate go tool swag init --outputTypes json,yaml -o api_specs

// @title			auctiondesk API
// @version		1.0
// @description	Auction management dashboard backend: auction lifecycle, list filters, vehicles and bids.
// @BasePath		/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/auctionview"
	"auctiondesk/internal/config"
	"auctiondesk/internal/database/db_client"
	"auctiondesk/internal/database/gateway"
	"auctiondesk/internal/events"
	"auctiondesk/internal/http/http_server"
	"auctiondesk/internal/reconciler"
	"auctiondesk/internal/redis/lock"
	"auctiondesk/internal/redis/redis_client"
	"auctiondesk/internal/services/auction"
	"auctiondesk/internal/services/auctioneer"
	"auctiondesk/internal/services/vehicle"
	"auctiondesk/internal/ws"

	"go.uber.org/zap"
)

var (
	Log, _ = zap.NewDevelopment()
)

func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	loc, _ := cfg.Location()
	Log.Debug("Configuration loaded successfully",
		zap.String("auctioneer_id", cfg.AuctioneerID),
		zap.Duration("reconcile_interval", cfg.ReconcileInterval),
		zap.String("timezone", loc.String()))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Hosted store
	db, err := db_client.Open(cfg.StoreURL, cfg.StoreAccessKey)
	if err != nil {
		Log.Fatal("store-open", zap.Error(err))
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := db_client.Migrate(db); err != nil {
			Log.Fatal("store-migrate", zap.Error(err))
		}
	}

	// 4. Redis
	redisClient, err := redis_client.NewRedisClient(cfg.RedisHost, int(cfg.RedisPort))
	if err != nil {
		Log.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer redisClient.Close()

	// 5. Event publishers
	publishers := events.Multi{events.NewRedisPublisher(redisClient)}
	if cfg.NatsURL != "" {
		np, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			Log.Fatal("nats-connect", zap.Error(err))
		}
		defer np.Close()
		publishers = append(publishers, np)
	}

	// 6. Services
	store := gateway.New(db)
	vehicleService := vehicle.NewVehicleService(store)
	auctionService := auction.NewAuctionService(store, vehicleService, publishers, loc)
	auctioneerService := auctioneer.NewAuctioneerService(store)

	// 7. Auction list + background reconciliation
	actorCtx := actor.WithAuctioneer(ctx, cfg.AuctioneerID)
	view := auctionview.New(auctionService, loc,
		auctionview.WithLocker(lock.New(redisClient, cfg.ReconcileLockTTL)))
	view.Reload(actorCtx)
	go reconciler.Run(actorCtx, view, cfg.ReconcileInterval)

	// 8. WebSockets hub + Redis fan-out
	hub := ws.NewHub()
	go ws.SubscribeRedisAuctionEvents(ctx, redisClient, hub)
	wsSrv := ws.NewWsServer(hub, view)

	// 9. HTTP + WS server
	httpServer := http_server.NewHttpServer(ctx, cfg.HttpServerPort, cfg.AuctioneerID, wsSrv, http_server.Services{
		View:       view,
		Auctions:   auctionService,
		Vehicles:   vehicleService,
		Auctioneer: auctioneerService,
	})
	disposed := make(chan struct{})
	go func() {
		defer close(disposed)
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
	<-disposed
	Log.Info("shutdown complete")
}
