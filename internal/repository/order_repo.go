package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Eursukkul/restaurant-ledger/internal/models"
)

type OrderRepository interface {
	Records(ctx context.Context) ([]Record, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, o *models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, check func(current models.OrderStatus) error) error
}

type orderRepository struct {
	store RowStore
}

func NewOrderRepository(store RowStore) OrderRepository {
	return &orderRepository{store: store}
}

// storedItem is the line-item shape kept in the items cell.
type storedItem struct {
	DishID   string `json:"菜品ID"`
	Quantity int    `json:"数量"`
}

func (r *orderRepository) Records(ctx context.Context) ([]Record, error) {
	return r.store.FetchAll(ctx, SheetOrders)
}

func (r *orderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	records, err := r.store.FetchAll(ctx, SheetOrders)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(records))
	for _, rec := range records {
		out = append(out, orderFromRecord(rec))
	}
	return out, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	records, err := r.store.FetchAll(ctx, SheetOrders)
	if err != nil {
		return nil, err
	}
	_, rec, ok := locateRow(records, ColOrderID, id)
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrRowNotFound)
	}
	o := orderFromRecord(rec)
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *models.Order) error {
	header, err := r.store.Header(ctx, SheetOrders)
	if err != nil {
		return err
	}
	rec, err := orderToRecord(o)
	if err != nil {
		return err
	}
	return r.store.AppendRow(ctx, SheetOrders, alignRow(header, rec))
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, check func(current models.OrderStatus) error) error {
	records, err := r.store.FetchAll(ctx, SheetOrders)
	if err != nil {
		return err
	}
	row, rec, ok := locateRow(records, ColOrderID, id)
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrRowNotFound)
	}
	if check != nil {
		current, _ := models.ParseOrderStatus(rec[ColOrderStatus])
		if err := check(current); err != nil {
			return err
		}
	}

	header, err := r.store.Header(ctx, SheetOrders)
	if err != nil {
		return err
	}
	col := columnIndex(header, ColOrderStatus)
	if col == 0 {
		return fmt.Errorf("%s.%s: %w", SheetOrders, ColOrderStatus, ErrColumnNotFound)
	}
	return r.store.UpdateCell(ctx, SheetOrders, row, col, status.Label())
}

func orderFromRecord(rec Record) models.Order {
	status, _ := models.ParseOrderStatus(rec[ColOrderStatus])
	o := models.Order{
		ID:           rec[ColOrderID],
		CustomerName: rec[ColCustomerName],
		Phone:        rec[ColPhone],
		Address:      rec[ColAddress],
		TotalAmount:  parseFloat(rec[ColTotalAmount]),
		Status:       status,
		Channel:      rec[ColChannel],
		Notes:        rec[ColNotes],
		CreatedAt:    rec[ColOrderDate],
	}
	var items []storedItem
	if err := json.Unmarshal([]byte(rec[ColItems]), &items); err == nil {
		o.Items = make([]models.LineItem, 0, len(items))
		for _, it := range items {
			o.Items = append(o.Items, models.LineItem{DishID: it.DishID, Quantity: it.Quantity})
		}
	}
	return o
}

func orderToRecord(o *models.Order) (Record, error) {
	items := make([]storedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, storedItem{DishID: it.DishID, Quantity: it.Quantity})
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return Record{
		ColOrderID:      o.ID,
		ColCustomerName: o.CustomerName,
		ColPhone:        o.Phone,
		ColAddress:      o.Address,
		ColItems:        string(encoded),
		ColTotalAmount:  strconv.FormatFloat(o.TotalAmount, 'f', -1, 64),
		ColOrderDate:    o.CreatedAt,
		ColOrderStatus:  o.Status.Label(),
		ColChannel:      o.Channel,
		ColNotes:        o.Notes,
	}, nil
}
