package handler

import (
	"net/http"

	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group, staff ...echo.MiddlewareFunc) {
	g.POST("", h.CreateOrder)
	g.GET("", h.QueryOrders)
	g.PATCH("/:id/status", h.UpdateStatus, staff...)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req service.CreateOrderInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.OK(order, "order "+order.ID+" created"))
}

func (h *OrderHandler) QueryOrders(c echo.Context) error {
	orders, err := h.svc.Query(c.Request().Context(), service.OrderQuery{
		ID:    c.QueryParam("id"),
		Phone: c.QueryParam("phone"),
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.List(orders))
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
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

	return c.JSON(http.StatusOK, dto.OK(change, "order status updated"))
}
