package vehiclehandler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"auctiondesk/internal/models"
	"auctiondesk/internal/services/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSvc struct {
	excluded string
	err      error
}

func (f *fakeSvc) ListAll(context.Context) ([]models.Vehicle, error) {
	return []models.Vehicle{{Ficha: "A"}, {Ficha: "B"}}, f.err
}

func (f *fakeSvc) ListAvailable(_ context.Context, exclude string) ([]models.Vehicle, error) {
	f.excluded = exclude
	return []models.Vehicle{{Ficha: "B"}}, f.err
}

func (f *fakeSvc) Get(_ context.Context, ficha string) (*models.Vehicle, error) {
	if ficha != "A" {
		return nil, vehicle.ErrNotFound
	}
	return &models.Vehicle{Ficha: "A", Model: "Corolla"}, f.err
}

func (f *fakeSvc) IsAvailable(context.Context, string, string) (bool, error) { return true, nil }

func serve(svc vehicle.IVehicleService, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(svc).Register(r)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes(t *testing.T) {
	svc := &fakeSvc{}

	w := serve(svc, "/vehicles")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ficha":"A"`)

	w = serve(svc, "/vehicles/available?exclude=a7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a7", svc.excluded)

	w = serve(svc, "/vehicles/A")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Corolla")

	assert.Equal(t, http.StatusNotFound, serve(svc, "/vehicles/Z").Code)
}

func TestStoreFailure(t *testing.T) {
	svc := &fakeSvc{err: errors.New("down")}
	assert.Equal(t, http.StatusInternalServerError, serve(svc, "/vehicles").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(svc, "/vehicles/available").Code)
}
