package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	"github.com/labstack/echo/v4"
)

type MenuHandler struct {
	svc service.MenuService
}

func NewMenuHandler(svc service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.QueryMenu)
	g.GET("/recommend", h.Recommend)
	g.GET("/check", h.CheckAvailability)
}

func (h *MenuHandler) QueryMenu(c echo.Context) error {
	dishes, err := h.svc.Query(c.Request().Context(), c.QueryParam("type"), c.QueryParam("value"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.List(dishes))
}

func (h *MenuHandler) Recommend(c echo.Context) error {
	var budget float64
	if v := c.QueryParam("budget"); v != "" {
		b, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "budget must be a number")
		}
		budget = b
	}
	count := 0
	if v := c.QueryParam("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "count must be an integer")
		}
		count = n
	}

	dishes, err := h.svc.Recommend(c.Request().Context(), c.QueryParam("category"), budget, count)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.List(dishes))
}

func (h *MenuHandler) CheckAvailability(c echo.Context) error {
	var names []string
	for _, n := range strings.Split(c.QueryParam("dishes"), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	result, err := h.svc.CheckAvailability(c.Request().Context(), names)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.OK(result, ""))
}
