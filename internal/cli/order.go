package cli

import (
	"context"
	"encoding/json"

	"github.com/Eursukkul/restaurant-ledger/internal/app"
	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	"github.com/spf13/cobra"
)

func newOrderCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create and track delivery orders",
	}
	cmd.AddCommand(newOrderCreateCmd(open))
	cmd.AddCommand(newOrderQueryCmd(open))
	cmd.AddCommand(newOrderUpdateCmd(open))
	return cmd
}

func newOrderCreateCmd(open Opener) *cobra.Command {
	var (
		in    service.CreateOrderInput
		items string
	)

	c := &cobra.Command{
		Use:   "create",
		Short: "Record a new order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if items != "" {
				if err := json.Unmarshal([]byte(items), &in.Items); err != nil {
					return respond(cmd, dto.Envelope{}, &service.ValidationError{
						Fields: []string{"items"},
						Msg:    "items must be a JSON array: " + err.Error(),
					})
				}
			}
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				order, err := a.Orders.Create(ctx, in)
				if err != nil {
					return respond(cmd, dto.Envelope{}, err)
				}
				return respond(cmd, dto.OK(order, "order "+order.ID+" created"), nil)
			})
		},
	}

	c.Flags().StringVar(&in.CustomerName, "name", "", "customer name")
	c.Flags().StringVar(&in.Phone, "phone", "", "customer phone")
	c.Flags().StringVar(&in.Address, "address", "", "delivery address")
	c.Flags().StringVar(&items, "items", "", `line items as JSON, e.g. [{"dish_id":"D001","quantity":2}]`)
	c.Flags().Float64Var(&in.TotalAmount, "total", 0, "order total")
	c.Flags().StringVar(&in.Channel, "channel", "", "order channel (wechat, douyin, meituan, taobao, phone)")
	c.Flags().StringVar(&in.Notes, "notes", "", "free-form notes")
	return c
}

func newOrderQueryCmd(open Opener) *cobra.Command {
	var q service.OrderQuery

	c := &cobra.Command{
		Use:   "query",
		Short: "Find orders by id or phone",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				orders, err := a.Orders.Query(ctx, q)
				return respond(cmd, dto.List(orders), err)
			})
		},
	}

	c.Flags().StringVar(&q.ID, "id", "", "order id")
	c.Flags().StringVar(&q.Phone, "phone", "", "customer phone")
	return c
}

func newOrderUpdateCmd(open Opener) *cobra.Command {
	var id, status string

	c := &cobra.Command{
		Use:   "update",
		Short: "Move an order to a new status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				change, err := a.Orders.SetStatus(ctx, id, status)
				return respond(cmd, dto.OK(change, "order status updated"), err)
			})
		},
	}

	c.Flags().StringVar(&id, "id", "", "order id")
	c.Flags().StringVar(&status, "status", "", "pending, preparing, delivering, completed or cancelled")
	return c
}
