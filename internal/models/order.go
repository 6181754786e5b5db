package models

import "encoding/json"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPreparing  OrderStatus = "preparing"
	OrderDelivering OrderStatus = "delivering"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

type LineItem struct {
	DishID   string `json:"dish_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// UnmarshalJSON also accepts the column-style keys written by the ordering sheet ("菜品ID", "数量").
func (li *LineItem) UnmarshalJSON(b []byte) error {
	var raw struct {
		DishID        string `json:"dish_id"`
		Quantity      int    `json:"quantity"`
		SheetDishID   string `json:"菜品ID"`
		SheetQuantity int    `json:"数量"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	li.DishID, li.Quantity = raw.DishID, raw.Quantity
	if li.DishID == "" {
		li.DishID = raw.SheetDishID
	}
	if li.Quantity == 0 {
		li.Quantity = raw.SheetQuantity
	}
	return nil
}

type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Items        []LineItem  `json:"items"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	Channel      string      `json:"channel"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    string      `json:"created_at"`
}
