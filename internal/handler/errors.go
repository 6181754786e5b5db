package handler

import (
	"github.com/Eursukkul/restaurant-ledger/internal/middleware"
	"github.com/labstack/echo/v4"
)

func toHTTPError(err error) error {
	return echo.NewHTTPError(middleware.StatusFor(err), err.Error())
}
