package auctionhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auctiondesk/internal/actor"
	"auctiondesk/internal/auctionview"
	"auctiondesk/internal/database/gateway"
	"auctiondesk/internal/models"
	"auctiondesk/internal/services/auction"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	auctions []models.Auction
	example  bool
	err      error
	calls    []string
}

func (v *fakeView) Snapshot(f auctionview.Filter) auctionview.Snapshot {
	return auctionview.Snapshot{Auctions: f.Apply(v.auctions, time.UTC), UsingExampleData: v.example}
}

func (v *fakeView) Reload(context.Context) auctionview.Snapshot {
	v.calls = append(v.calls, "reload")
	return v.Snapshot(auctionview.Filter{})
}

func (v *fakeView) Location() *time.Location { return time.UTC }
func (v *fakeView) UsingExampleData() bool   { return v.example }

func (v *fakeView) Get(id string) (models.Auction, bool) {
	for _, a := range v.auctions {
		if a.ID == id {
			return a, true
		}
	}
	return models.Auction{}, false
}

func (v *fakeView) act(name string) error {
	v.calls = append(v.calls, name)
	return v.err
}

func (v *fakeView) Publish(_ context.Context, id string) error { return v.act("publish:" + id) }
func (v *fakeView) Stop(_ context.Context, id string) error    { return v.act("stop:" + id) }
func (v *fakeView) Delete(_ context.Context, id string) error  { return v.act("delete:" + id) }

func (v *fakeView) Cancel(_ context.Context, id, reason string) error {
	return v.act("cancel:" + id + ":" + reason)
}

func (v *fakeView) Create(_ context.Context, form auction.AuctionForm) (*models.Auction, error) {
	if _, err := form.Validate(time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), time.UTC); err != nil {
		return nil, err
	}
	return &models.Auction{ID: "new", Title: form.Title, Status: models.StatusPending}, v.act("create")
}

func (v *fakeView) Update(_ context.Context, id string, _ auction.AuctionForm) (*models.Auction, error) {
	return &models.Auction{ID: id}, v.act("update:" + id)
}

type fakeSvc struct {
	auction.IAuctionService
	detail *auction.AuctionDetail
	err    error
}

func (s fakeSvc) GetAuctionDetail(context.Context, string) (*auction.AuctionDetail, error) {
	return s.detail, s.err
}

func (s fakeSvc) ListBids(context.Context, string) ([]models.Bid, error) { return nil, s.err }

func newRouter(v View, svc auction.IAuctionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(actor.WithAuctioneer(c.Request.Context(), "a-1"))
	})
	New(v, svc).Register(r)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func created(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	return &t
}

func TestList_filters(t *testing.T) {
	v := &fakeView{auctions: []models.Auction{
		{ID: "1", Status: models.StatusFinalized, CreatedAt: created(2025, 3, 20)},
		{ID: "2", Status: models.StatusActive, CreatedAt: created(2025, 4, 5)},
		{ID: "3", Status: models.StatusPending, CreatedAt: created(2025, 4, 25)},
	}}
	r := newRouter(v, fakeSvc{})

	w := do(r, http.MethodGet, "/auctions?status=Activa&from=2025-04-01&to=2025-04-30", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap auctionview.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Auctions, 1)
	assert.Equal(t, "2", snap.Auctions[0].ID)
}

func TestList_badQuery(t *testing.T) {
	r := newRouter(&fakeView{}, fakeSvc{})

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/auctions?from=01-04-2025", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/auctions?status=Vendida", nil).Code)
}

func TestReload(t *testing.T) {
	v := &fakeView{}
	w := do(newRouter(v, fakeSvc{}), http.MethodPost, "/auctions/reload", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"reload"}, v.calls)
}

func TestCreate_fieldErrors(t *testing.T) {
	v := &fakeView{}
	w := do(newRouter(v, fakeSvc{}), http.MethodPost, "/auctions", map[string]string{
		"title": "Corolla", "start": "2025-04-11T09:00", "end": "2025-04-12T09:00",
		"base_price": "-5", "min_bid": "1", "max_participants": "3", "vehicle": "F-1",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, auction.FieldBasePrice)
	assert.Empty(t, v.calls)
}

func TestCreate_ok(t *testing.T) {
	w := do(newRouter(&fakeView{}, fakeSvc{}), http.MethodPost, "/auctions", map[string]string{
		"title": "Corolla", "start": "2025-04-11T09:00", "end": "2025-04-12T09:00",
		"base_price": "2000", "min_bid": "100", "max_participants": "30", "vehicle": "F-1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestActions_mapErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusNoContent},
		{auction.ErrStartPassed, http.StatusConflict},
		{auction.ErrNotDeletable, http.StatusConflict},
		{auction.ErrStatusChanged, http.StatusConflict},
		{auction.ErrForbidden, http.StatusForbidden},
		{auction.ErrNotFound, http.StatusNotFound},
		{auction.ErrReasonTooLong, http.StatusBadRequest},
		{&gateway.StepError{Table: gateway.TableAdjudication, Err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		v := &fakeView{err: tc.err}
		r := newRouter(v, fakeSvc{})
		assert.Equal(t, tc.want, do(r, http.MethodPost, "/auctions/7/publish", nil).Code, "%v", tc.err)
		assert.Equal(t, tc.want, do(r, http.MethodPost, "/auctions/7/stop", nil).Code, "%v", tc.err)
		assert.Equal(t, tc.want, do(r, http.MethodDelete, "/auctions/7", nil).Code, "%v", tc.err)
		assert.Equal(t, tc.want, do(r, http.MethodPost, "/auctions/7/cancel", map[string]string{"reason": "r"}).Code, "%v", tc.err)
	}
}

func TestCancel_requiresReasonBody(t *testing.T) {
	v := &fakeView{}
	w := do(newRouter(v, fakeSvc{}), http.MethodPost, "/auctions/7/cancel", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, v.calls)
}

func TestInfo(t *testing.T) {
	detail := &auction.AuctionDetail{Auction: models.Auction{ID: "7"}, Bids: []models.Bid{{ID: "b"}}, HighestBidID: "b"}
	w := do(newRouter(&fakeView{}, fakeSvc{detail: detail}), http.MethodGet, "/auctions/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"highest_bid_id":"b"`)

	w = do(newRouter(&fakeView{}, fakeSvc{err: auction.ErrForbidden}), http.MethodGet, "/auctions/7", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInfo_exampleData(t *testing.T) {
	v := &fakeView{example: true, auctions: []models.Auction{{ID: "1", Title: "Toyota Corolla"}}}
	r := newRouter(v, fakeSvc{err: errors.New("store down")})

	w := do(r, http.MethodGet, "/auctions/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Toyota Corolla")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/auctions/9", nil).Code)
	w = do(r, http.MethodGet, "/auctions/1/bids", nil)
	assert.Equal(t, "[]", w.Body.String())
}
