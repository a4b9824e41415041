package auctionhandler

import (
	"context"
	"net/http"
	"time"

	"auctiondesk/internal/auctionview"
	"auctiondesk/internal/models"
	"auctiondesk/internal/services/auction"

	"github.com/gin-gonic/gin"
)

// View is the in-memory auction list the dashboard acts on.
type View interface {
	Snapshot(f auctionview.Filter) auctionview.Snapshot
	Reload(ctx context.Context) auctionview.Snapshot
	Location() *time.Location
	UsingExampleData() bool
	Get(id string) (models.Auction, bool)
	Publish(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	Cancel(ctx context.Context, id, reason string) error
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, form auction.AuctionForm) (*models.Auction, error)
	Update(ctx context.Context, id string, form auction.AuctionForm) (*models.Auction, error)
}

type Handler struct {
	view View
	svc  auction.IAuctionService
}

func New(view View, svc auction.IAuctionService) *Handler {
	return &Handler{view: view, svc: svc}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/auctions", h.list)
	r.POST("/auctions", h.create)
	r.POST("/auctions/reload", h.reload)
	r.GET("/auctions/:id", h.info)
	r.PUT("/auctions/:id", h.update)
	r.DELETE("/auctions/:id", h.delete)
	r.GET("/auctions/:id/bids", h.bids)
	r.POST("/auctions/:id/publish", h.publish)
	r.POST("/auctions/:id/stop", h.stop)
	r.POST("/auctions/:id/cancel", h.cancel)
}

// @Summary		List auctions
// @Description	Returns the auctions of the current auctioneer, filtered by status and creation date. Falls back to example data when the store is unreachable.
// @Tags			Auctions
// @Param			status	query		[]string	false	"Status filter (repeatable)"	collectionFormat(multi)	Enums(Pendiente,Publicada,Activa,Expirada,Finalizada,Cancelada)
// @Param			from	query		string		false	"Created on or after (YYYY-MM-DD)"
// @Param			to		query		string		false	"Created on or before (YYYY-MM-DD)"
// @Success		200		{object}	auctionview.Snapshot
// @Failure		400		{object}	ErrorResponse
// @Router			/auctions [get]
func (h *Handler) list(c *gin.Context) {
	var q ListAuctionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	f, err := auctionview.ParseFilter(q.Status, q.From, q.To, h.view.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.view.Snapshot(f))
}

// @Summary		Reload auctions
// @Description	Refetches the list from the store and runs one reconciliation pass.
// @Tags			Auctions
// @Success		200	{object}	auctionview.Snapshot
// @Router			/auctions/reload [post]
func (h *Handler) reload(c *gin.Context) {
	c.JSON(http.StatusOK, h.view.Reload(c.Request.Context()))
}

// @Summary		Get auction details
// @Description	Returns the auction with its vehicle and, for active auctions, its bids.
// @Tags			Auctions
// @Param			id	path		string	true	"Auction ID"
// @Success		200	{object}	auction.AuctionDetail
// @Failure		403	{object}	ErrorResponse
// @Failure		404	{object}	ErrorResponse
// @Router			/auctions/{id} [get]
func (h *Handler) info(c *gin.Context) {
	id := c.Param("id")
	if h.view.UsingExampleData() {
		a, ok := h.view.Get(id)
		if !ok {
			writeError(c, auction.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, auction.AuctionDetail{Auction: a, Bids: []models.Bid{}})
		return
	}
	detail, err := h.svc.GetAuctionDetail(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary		List bids
// @Description	Bids of an auction, most recent first.
// @Tags			Auctions
// @Param			id	path		string	true	"Auction ID"
// @Success		200	{array}		models.Bid
// @Failure		404	{object}	ErrorResponse
// @Router			/auctions/{id}/bids [get]
func (h *Handler) bids(c *gin.Context) {
	if h.view.UsingExampleData() {
		c.JSON(http.StatusOK, []models.Bid{})
		return
	}
	bids, err := h.svc.ListBids(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	c.JSON(http.StatusOK, bids)
}

// @Summary		Create an auction
// @Description	Validates the form and stores a new pending auction.
// @Tags			Auctions
// @Param			body	body		auction.AuctionForm	true	"Auction form"
// @Success		201		{object}	models.Auction
// @Failure		422		{object}	ErrorResponse
// @Router			/auctions [post]
func (h *Handler) create(c *gin.Context) {
	var form auction.AuctionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	a, err := h.view.Create(c.Request.Context(), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// @Summary		Edit an auction
// @Description	Only pending auctions managed by the current auctioneer can be edited.
// @Tags			Auctions
// @Param			id		path		string				true	"Auction ID"
// @Param			body	body		auction.AuctionForm	true	"Auction form"
// @Success		200		{object}	models.Auction
// @Failure		403		{object}	ErrorResponse
// @Failure		409		{object}	ErrorResponse
// @Failure		422		{object}	ErrorResponse
// @Router			/auctions/{id} [put]
func (h *Handler) update(c *gin.Context) {
	var form auction.AuctionForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	a, err := h.view.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary		Publish an auction
// @Description	Pendiente -> Publicada. Rejected when the schedule is in the past or inconsistent.
// @Tags			Auctions
// @Param			id	path	string	true	"Auction ID"
// @Success		204
// @Failure		409	{object}	ErrorResponse
// @Router			/auctions/{id}/publish [post]
func (h *Handler) publish(c *gin.Context) {
	if err := h.view.Publish(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Stop an auction
// @Description	Publicada -> Pendiente.
// @Tags			Auctions
// @Param			id	path	string	true	"Auction ID"
// @Success		204
// @Failure		409	{object}	ErrorResponse
// @Router			/auctions/{id}/stop [post]
func (h *Handler) stop(c *gin.Context) {
	if err := h.view.Stop(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Cancel an auction
// @Description	Activa -> Cancelada with a reason of at most 300 characters.
// @Tags			Auctions
// @Param			id		path	string				true	"Auction ID"
// @Param			body	body	CancelAuctionBody	true	"Cancellation reason"
// @Success		204
// @Failure		400	{object}	ErrorResponse
// @Failure		409	{object}	ErrorResponse
// @Router			/auctions/{id}/cancel [post]
func (h *Handler) cancel(c *gin.Context) {
	var body CancelAuctionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.view.Cancel(c.Request.Context(), c.Param("id"), body.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Delete an auction
// @Description	Removes a pending, expired, finalized or cancelled auction with its bids, participations and adjudications.
// @Tags			Auctions
// @Param			id	path	string	true	"Auction ID"
// @Success		204
// @Failure		409	{object}	ErrorResponse
// @Failure		500	{object}	ErrorResponse
// @Router			/auctions/{id} [delete]
func (h *Handler) delete(c *gin.Context) {
	if err := h.view.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
