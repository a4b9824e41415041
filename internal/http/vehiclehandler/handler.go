package vehiclehandler

import (
	"errors"
	"net/http"

	"auctiondesk/internal/services/vehicle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	svc vehicle.IVehicleService
}

func New(svc vehicle.IVehicleService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/vehicles", h.list)
	r.GET("/vehicles/available", h.available)
	r.GET("/vehicles/:ficha", h.info)
}

func serverError(c *gin.Context, err error) {
	zap.L().Error("vehicle_request_failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

// @Summary	List vehicles
// @Tags		Vehicles
// @Success	200	{array}		models.Vehicle
// @Failure	500	{object}	vehiclehandler.ErrorResponse
// @Router		/vehicles [get]
func (h *Handler) list(c *gin.Context) {
	out, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		List available vehicles
// @Description	Vehicles not held by an open auction. Pass exclude to keep the vehicle of the auction being edited.
// @Tags			Vehicles
// @Param			exclude	query		string	false	"Auction ID whose vehicle stays selectable"
// @Success		200		{array}		models.Vehicle
// @Failure		500		{object}	vehiclehandler.ErrorResponse
// @Router			/vehicles/available [get]
func (h *Handler) available(c *gin.Context) {
	out, err := h.svc.ListAvailable(c.Request.Context(), c.Query("exclude"))
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary	Get a vehicle
// @Tags		Vehicles
// @Param		ficha	path		string	true	"Vehicle record number"
// @Success	200		{object}	models.Vehicle
// @Failure	404		{object}	vehiclehandler.ErrorResponse
// @Router		/vehicles/{ficha} [get]
func (h *Handler) info(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("ficha"))
	if errors.Is(err, vehicle.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
