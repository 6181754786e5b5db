package cli

import (
	"context"

	"github.com/Eursukkul/restaurant-ledger/internal/app"
	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/spf13/cobra"
)

func newMenuCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Browse dishes on sale",
	}
	cmd.AddCommand(newMenuQueryCmd(open))
	cmd.AddCommand(newMenuRecommendCmd(open))
	cmd.AddCommand(newMenuCheckCmd(open))
	return cmd
}

func newMenuQueryCmd(open Opener) *cobra.Command {
	var queryType, value string

	c := &cobra.Command{
		Use:   "query",
		Short: "List available dishes, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				dishes, err := a.Menu.Query(ctx, queryType, value)
				return respond(cmd, dto.List(dishes), err)
			})
		},
	}

	c.Flags().StringVar(&queryType, "type", "all", "filter: all, category, price or name")
	c.Flags().StringVar(&value, "value", "", "filter value")
	return c
}

func newMenuRecommendCmd(open Opener) *cobra.Command {
	var (
		category string
		budget   float64
		count    int
	)

	c := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest dishes within a category and budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				dishes, err := a.Menu.Recommend(ctx, category, budget, count)
				return respond(cmd, dto.List(dishes), err)
			})
		},
	}

	c.Flags().StringVar(&category, "category", "", "dish category")
	c.Flags().Float64Var(&budget, "budget", 0, "maximum price per dish")
	c.Flags().IntVar(&count, "count", 3, "number of dishes")
	return c
}

func newMenuCheckCmd(open Opener) *cobra.Command {
	var dishes []string

	c := &cobra.Command{
		Use:   "check",
		Short: "Check whether named dishes can be ordered",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				result, err := a.Menu.CheckAvailability(ctx, append(dishes, args...))
				return respond(cmd, dto.OK(result, ""), err)
			})
		},
	}

	c.Flags().StringSliceVar(&dishes, "dishes", nil, "comma-separated dish names")
	return c
}
