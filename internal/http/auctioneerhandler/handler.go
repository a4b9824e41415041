package auctioneerhandler

import (
	"net/http"

	"auctiondesk/internal/services/auctioneer"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	svc auctioneer.IAuctioneerService
}

func New(svc auctioneer.IAuctioneerService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/auctioneer", h.info)
}

// @Summary		Current auctioneer
// @Description	Id and display name shown in the dashboard header.
// @Tags			Auctioneer
// @Success		200	{object}	models.Auctioneer
// @Failure		401	{object}	auctioneerhandler.ErrorResponse
// @Router			/auctioneer [get]
func (h *Handler) info(c *gin.Context) {
	out, err := h.svc.Info(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
