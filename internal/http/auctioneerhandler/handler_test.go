package auctioneerhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSvc struct{}

func (fakeSvc) Info(ctx context.Context) (models.Auctioneer, error) {
	id, err := actor.Auctioneer(ctx)
	if err != nil {
		return models.Auctioneer{}, err
	}
	return models.Auctioneer{ID: id, Name: "Ana"}, nil
}

func TestInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(actor.WithAuctioneer(c.Request.Context(), "a-1"))
	})
	New(fakeSvc{}).Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auctioneer", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Auctioneer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.Auctioneer{ID: "a-1", Name: "Ana"}, got)
}

func TestInfo_noActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(fakeSvc{}).Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auctioneer", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
