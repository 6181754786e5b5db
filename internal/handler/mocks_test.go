package handler

import (
	"context"

	"github.com/Eursukkul/restaurant-ledger/internal/models"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
)

// --- Mock ReservationService ---

type mockReservationService struct {
	querySlotsFn func(ctx context.Context, date string, maxCapacity int) ([]service.SlotOccupancy, error)
	createFn     func(ctx context.Context, in service.CreateReservationInput) (*models.Reservation, error)
	queryFn      func(ctx context.Context, q service.ReservationQuery) ([]models.Reservation, error)
	cancelFn     func(ctx context.Context, id string) (*service.StatusChange, error)
	setStatusFn  func(ctx context.Context, id, status string) (*service.StatusChange, error)
}

func (m *mockReservationService) QuerySlots(ctx context.Context, date string, maxCapacity int) ([]service.SlotOccupancy, error) {
	return m.querySlotsFn(ctx, date, maxCapacity)
}
func (m *mockReservationService) Create(ctx context.Context, in service.CreateReservationInput) (*models.Reservation, error) {
	return m.createFn(ctx, in)
}
func (m *mockReservationService) Query(ctx context.Context, q service.ReservationQuery) ([]models.Reservation, error) {
	return m.queryFn(ctx, q)
}
func (m *mockReservationService) Cancel(ctx context.Context, id string) (*service.StatusChange, error) {
	return m.cancelFn(ctx, id)
}
func (m *mockReservationService) SetStatus(ctx context.Context, id, status string) (*service.StatusChange, error) {
	return m.setStatusFn(ctx, id, status)
}

// --- Mock OrderService ---

type mockOrderService struct {
	createFn    func(ctx context.Context, in service.CreateOrderInput) (*models.Order, error)
	queryFn     func(ctx context.Context, q service.OrderQuery) ([]models.Order, error)
	setStatusFn func(ctx context.Context, id, status string) (*service.StatusChange, error)
}

func (m *mockOrderService) Create(ctx context.Context, in service.CreateOrderInput) (*models.Order, error) {
	return m.createFn(ctx, in)
}
func (m *mockOrderService) Query(ctx context.Context, q service.OrderQuery) ([]models.Order, error) {
	return m.queryFn(ctx, q)
}
func (m *mockOrderService) SetStatus(ctx context.Context, id, status string) (*service.StatusChange, error) {
	return m.setStatusFn(ctx, id, status)
}

// --- Mock MenuService ---

type mockMenuService struct {
	queryFn     func(ctx context.Context, queryType, value string) ([]models.Dish, error)
	recommendFn func(ctx context.Context, category string, budget float64, count int) ([]models.Dish, error)
	checkFn     func(ctx context.Context, names []string) (map[string]service.DishAvailability, error)
}

func (m *mockMenuService) Query(ctx context.Context, queryType, value string) ([]models.Dish, error) {
	return m.queryFn(ctx, queryType, value)
}
func (m *mockMenuService) Recommend(ctx context.Context, category string, budget float64, count int) ([]models.Dish, error) {
	return m.recommendFn(ctx, category, budget, count)
}
func (m *mockMenuService) CheckAvailability(ctx context.Context, names []string) (map[string]service.DishAvailability, error) {
	return m.checkFn(ctx, names)
}
