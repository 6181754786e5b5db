package cli

import (
	"context"

	"github.com/Eursukkul/restaurant-ledger/internal/app"
	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	"github.com/spf13/cobra"
)

func newReservationCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reservation",
		Short: "Query capacity and manage table reservations",
	}
	cmd.AddCommand(newReservationSlotsCmd(open))
	cmd.AddCommand(newReservationCreateCmd(open))
	cmd.AddCommand(newReservationQueryCmd(open))
	cmd.AddCommand(newReservationCancelCmd(open))
	cmd.AddCommand(newReservationStatusCmd(open))
	return cmd
}

func newReservationSlotsCmd(open Opener) *cobra.Command {
	var (
		date        string
		maxCapacity int
	)

	c := &cobra.Command{
		Use:   "query-slots",
		Short: "Show occupied and remaining seats per time slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				slots, err := a.Reservations.QuerySlots(ctx, date, maxCapacity)
				env := dto.OK(slots, "")
				env.Date = date
				return respond(cmd, env, err)
			})
		},
	}

	c.Flags().StringVar(&date, "date", "", "reservation date (YYYY-MM-DD)")
	c.Flags().IntVar(&maxCapacity, "max-capacity", 0, "seats per slot (default MAX_CAPACITY)")
	return c
}

func newReservationCreateCmd(open Opener) *cobra.Command {
	var in service.CreateReservationInput

	c := &cobra.Command{
		Use:   "create",
		Short: "Book a table if the slot has room",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				res, err := a.Reservations.Create(ctx, in)
				if err != nil {
					return respond(cmd, dto.Envelope{}, err)
				}
				return respond(cmd, dto.OK(res, "reservation "+res.ID+" confirmed"), nil)
			})
		},
	}

	c.Flags().StringVar(&in.CustomerName, "name", "", "customer name")
	c.Flags().StringVar(&in.Phone, "phone", "", "customer phone")
	c.Flags().StringVar(&in.Date, "date", "", "reservation date (YYYY-MM-DD)")
	c.Flags().StringVar(&in.TimeSlot, "time-slot", "", "time slot, e.g. 19:00-21:00")
	c.Flags().IntVar(&in.PartySize, "party-size", 0, "number of guests")
	c.Flags().StringVar(&in.Channel, "channel", "", "booking channel (wechat, douyin, meituan, taobao, phone)")
	c.Flags().StringVar(&in.Notes, "notes", "", "free-form notes")
	return c
}

func newReservationQueryCmd(open Opener) *cobra.Command {
	var q service.ReservationQuery

	c := &cobra.Command{
		Use:   "query",
		Short: "Find reservations by id, phone and/or date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				reservations, err := a.Reservations.Query(ctx, q)
				return respond(cmd, dto.List(reservations), err)
			})
		},
	}

	c.Flags().StringVar(&q.ID, "id", "", "reservation id")
	c.Flags().StringVar(&q.Phone, "phone", "", "customer phone")
	c.Flags().StringVar(&q.Date, "date", "", "reservation date (YYYY-MM-DD)")
	return c
}

func newReservationCancelCmd(open Opener) *cobra.Command {
	var id string

	c := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a reservation and release its seats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				change, err := a.Reservations.Cancel(ctx, id)
				if err != nil {
					return respond(cmd, dto.Envelope{}, err)
				}
				return respond(cmd, dto.OK(change, "reservation "+id+" cancelled"), nil)
			})
		},
	}

	c.Flags().StringVar(&id, "id", "", "reservation id")
	return c
}

func newReservationStatusCmd(open Opener) *cobra.Command {
	var id, status string

	c := &cobra.Command{
		Use:   "status",
		Short: "Set a reservation's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				change, err := a.Reservations.SetStatus(ctx, id, status)
				return respond(cmd, dto.OK(change, "reservation status updated"), err)
			})
		},
	}

	c.Flags().StringVar(&id, "id", "", "reservation id")
	c.Flags().StringVar(&status, "status", "", "pending, confirmed or cancelled")
	return c
}
