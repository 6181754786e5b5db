package handler

import (
	"net/http"
	"strconv"

	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// RegisterRoutes mounts the reservation API on g; staff middleware guards the status route.
func (h *ReservationHandler) RegisterRoutes(g *echo.Group, staff ...echo.MiddlewareFunc) {
	g.GET("/slots", h.QuerySlots)
	g.POST("", h.CreateReservation)
	g.GET("", h.QueryReservations)
	g.POST("/:id/cancel", h.CancelReservation)
	g.PATCH("/:id/status", h.UpdateStatus, staff...)
}

func (h *ReservationHandler) QuerySlots(c echo.Context) error {
	date := c.QueryParam("date")
	capacity := 0
	if v := c.QueryParam("max_capacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "max_capacity must be a positive integer")
		}
		capacity = n
	}

	slots, err := h.svc.QuerySlots(c.Request().Context(), date, capacity)
	if err != nil {
		return toHTTPError(err)
	}

	resp := dto.OK(slots, "")
	resp.Date = date
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req service.CreateReservationInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.OK(res, "reservation "+res.ID+" confirmed"))
}

func (h *ReservationHandler) QueryReservations(c echo.Context) error {
	q := service.ReservationQuery{
		ID:    c.QueryParam("id"),
		Phone: c.QueryParam("phone"),
		Date:  c.QueryParam("date"),
	}

	reservations, err := h.svc.Query(c.Request().Context(), q)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.List(reservations))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	change, err := h.svc.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.OK(change, "reservation "+change.ID+" cancelled"))
}

func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	change, err := h.svc.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.OK(change, "reservation status updated"))
}
