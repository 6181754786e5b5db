package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/restaurant-ledger/config"
	"github.com/Eursukkul/restaurant-ledger/internal/app"
	"github.com/Eursukkul/restaurant-ledger/internal/channel"
	"github.com/Eursukkul/restaurant-ledger/internal/consumer"
	"github.com/Eursukkul/restaurant-ledger/internal/handler"
	"github.com/Eursukkul/restaurant-ledger/internal/middleware"
	"github.com/Eursukkul/restaurant-ledger/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledger, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to start ledger: %v", err)
	}
	defer ledger.Close()

	// RabbitMQ consumer: platform messages and ledger commands
	if ledger.Publisher != nil {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}

		formatter := channel.Formatter{WeChatAccountID: cfg.WeChatAccountID}
		consumer.NewMessageConsumer(ledger.Reservations, ledger.Orders, channel.EchoResponder{}, formatter, ledger.Publisher).
			Start(ctx, msgs)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "restaurant-ledger"})
	})

	staff := middleware.StaffAuth(cfg.StaffKeyHash)
	api := e.Group("/api/v1")
	handler.NewReservationHandler(ledger.Reservations).RegisterRoutes(api.Group("/reservations"), staff)
	handler.NewOrderHandler(ledger.Orders).RegisterRoutes(api.Group("/orders"), staff)
	handler.NewMenuHandler(ledger.Menu).RegisterRoutes(api.Group("/menu"))

	go func() {
		log.Printf("Restaurant Ledger starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
