package http_server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/auctionview"
	"auctiondesk/internal/models"
	"auctiondesk/internal/services/auction"
	"auctiondesk/internal/services/auctioneer"
	"auctiondesk/internal/services/vehicle"
	"auctiondesk/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingList makes the view fall back to example data.
type failingList struct {
	auction.IAuctionService
}

func (failingList) ListAuctions(context.Context) ([]models.Auction, error) {
	return nil, context.DeadlineExceeded
}

func (failingList) Now() time.Time { return time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC) }

type nameStore struct{}

func (nameStore) GetAuctioneerName(context.Context, string) (string, error) { return "Ana Pérez", nil }

type noVehicles struct{}

func (noVehicles) ListVehicles(context.Context) ([]models.Vehicle, error) { return nil, nil }
func (noVehicles) GetVehicle(context.Context, string) (*models.Vehicle, error) {
	return nil, vehicle.ErrNotFound
}
func (noVehicles) ListVehicleRefs(context.Context, string) ([]models.VehicleRef, error) {
	return nil, nil
}

func newTestServer() http.Handler {
	gin.SetMode(gin.TestMode)
	zap.ReplaceGlobals(zap.NewNop())

	svc := failingList{}
	view := auctionview.New(svc, time.UTC)
	view.Reload(actor.WithAuctioneer(context.Background(), "a-1"))

	srv := NewHttpServer(context.Background(), 0, "a-1", ws.NewWsServer(ws.NewHub(), view), Services{
		View:       view,
		Auctions:   svc,
		Vehicles:   vehicle.NewVehicleService(noVehicles{}),
		Auctioneer: auctioneer.NewAuctioneerService(nameStore{}),
	})
	return srv.Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes_exampleDataListing(t *testing.T) {
	h := newTestServer()

	w := get(h, "/auctions")
	require.Equal(t, http.StatusOK, w.Code)

	var snap auctionview.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.UsingExampleData)
	assert.Equal(t, auctionview.ExampleDataBanner, snap.Banner)
	assert.Len(t, snap.Auctions, 3)

	w = get(h, "/auctions?status=Finalizada")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Auctions, 1)
	assert.Equal(t, "3", snap.Auctions[0].ID)
}

func TestRoutes_actorIsInstalled(t *testing.T) {
	w := get(newTestServer(), "/auctioneer")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"a-1","name":"Ana Pérez"}`, w.Body.String())
}

func TestRoutes_vehicles(t *testing.T) {
	h := newTestServer()
	assert.Equal(t, http.StatusOK, get(h, "/vehicles/available").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/vehicles/F-404").Code)
}
