// Package cli implements ledgerctl, the command-line front end to the ledger.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eursukkul/restaurant-ledger/config"
	"github.com/Eursukkul/restaurant-ledger/internal/app"
	"github.com/Eursukkul/restaurant-ledger/internal/dto"
	"github.com/Eursukkul/restaurant-ledger/internal/service"
	"github.com/spf13/cobra"
)

// Opener builds the ledger a command runs against.
type Opener func(ctx context.Context) (*app.App, error)

// ExitError carries the process exit status for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

func NewRootCmd(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Manage restaurant orders, reservations and the menu",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newReservationCmd(open))
	root.AddCommand(newOrderCmd(open))
	root.AddCommand(newMenuCmd(open))

	return root
}

func defaultOpener(ctx context.Context) (*app.App, error) {
	return app.New(ctx, config.Load())
}

// Execute runs ledgerctl and returns the process exit status.
func Execute() int {
	err := NewRootCmd(defaultOpener).Execute()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

// withApp opens the ledger for the duration of fn.
func withApp(cmd *cobra.Command, open Opener, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// respond prints the envelope for a result. Validation failures exit 1, other failures 2.
func respond(cmd *cobra.Command, env dto.Envelope, err error) error {
	if err != nil {
		env = dto.Failure(err.Error())
	}
	if printErr := printJSON(cmd.OutOrStdout(), env); printErr != nil {
		return printErr
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrValidation):
		return &ExitError{Code: 1, Err: err}
	default:
		return &ExitError{Code: 2, Err: err}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
