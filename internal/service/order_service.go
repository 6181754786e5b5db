package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Eursukkul/restaurant-ledger/internal/lock"
	"github.com/Eursukkul/restaurant-ledger/internal/models"
	"github.com/Eursukkul/restaurant-ledger/internal/repository"
)

type CreateOrderInput struct {
	CustomerName string            `json:"customer_name" validate:"required"`
	Phone        string            `json:"phone" validate:"required"`
	Address      string            `json:"address" validate:"required"`
	Items        []models.LineItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount  float64           `json:"total_amount" validate:"gt=0"`
	Channel      string            `json:"channel" validate:"required"`
	Notes        string            `json:"notes"`
}

type OrderQuery struct {
	ID    string `json:"id" query:"id"`
	Phone string `json:"phone" query:"phone"`
}

type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	Query(ctx context.Context, q OrderQuery) ([]models.Order, error)
	SetStatus(ctx context.Context, id, status string) (*StatusChange, error)
}

type orderService struct {
	repo      repository.OrderRepository
	locker    lock.Locker
	publisher EventPublisher
	opts      Options
}

func NewOrderService(repo repository.OrderRepository, locker lock.Locker, publisher EventPublisher, opts Options) OrderService {
	if locker == nil {
		locker = lock.Noop{}
	}
	return &orderService{
		repo:      repo,
		locker:    locker,
		publisher: publisher,
		opts:      opts.withDefaults(),
	}
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	ch, err := parseChannel(in.Channel)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now().In(s.opts.Location)
	dateKey := DateKey(now)
	unlock, err := s.locker.Lock(ctx, sequenceLockKey(OrderPrefix, dateKey))
	if err != nil {
		return nil, fmt.Errorf("lock sequence %s%s: %w", OrderPrefix, dateKey, err)
	}
	defer unlock()

	records, err := s.repo.Records(ctx)
	if err != nil {
		return nil, storeFailure("read orders", err)
	}
	o := &models.Order{
		ID:           NextID(OrderPrefix, dateKey, records, repository.ColOrderID),
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Address:      in.Address,
		Items:        in.Items,
		TotalAmount:  in.TotalAmount,
		Status:       models.OrderPending,
		Channel:      ch.Label(),
		Notes:        in.Notes,
		CreatedAt:    now.Format(timestampLayout),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, storeFailure("append order", err)
	}

	log.Printf("[Order] created %s: %d item(s), total %.2f via %s", o.ID, len(o.Items), o.TotalAmount, o.Channel)
	emit(s.publisher, "order.created", o)
	return o, nil
}

func (s *orderService) Query(ctx context.Context, q OrderQuery) ([]models.Order, error) {
	if q.ID != "" {
		o, err := s.repo.FindByID(ctx, q.ID)
		if err != nil {
			return nil, lookupFailure("order", q.ID, err)
		}
		return []models.Order{*o}, nil
	}
	if q.Phone == "" {
		return nil, invalidf("provide an order id or phone")
	}

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure("read orders", err)
	}
	out := make([]models.Order, 0)
	for _, o := range all {
		if o.Phone == q.Phone {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *orderService) SetStatus(ctx context.Context, id, status string) (*StatusChange, error) {
	if id == "" {
		return nil, missingFields("id")
	}
	next, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, &ValidationError{
			Fields: []string{"status"},
			Msg:    fmt.Sprintf("invalid order status %q: expected pending, preparing, delivering, completed or cancelled", status),
		}
	}

	var previous models.OrderStatus
	err := s.repo.UpdateStatus(ctx, id, next, func(current models.OrderStatus) error {
		previous = current
		if s.opts.Policy == PolicyPermissive || current == "" {
			return nil
		}
		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: order %s from %s to %s", ErrInvalidTransition, id, current, next)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, lookupFailure("order", id, err)
	}

	change := &StatusChange{ID: id, Previous: string(previous), Status: string(next)}
	log.Printf("[Order] %s status %s -> %s", id, change.Previous, change.Status)
	emit(s.publisher, "order.status_changed", change)
	return change, nil
}
