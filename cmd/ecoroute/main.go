// Command ecoroute calculates and tracks the CO2 emissions of trips.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/ecoroute/internal/cli"
	"github.com/rshade/ecoroute/internal/config"
	"github.com/rshade/ecoroute/internal/engine"
	"github.com/rshade/ecoroute/internal/greenops"
	"github.com/rshade/ecoroute/internal/history"
	"github.com/rshade/ecoroute/pkg/version"
)

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitInvalidInput = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps rejected input and configuration to exitInvalidInput and
// every other failure to exitFailure.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var (
		transportErr  *engine.InvalidTransportError
		distanceErr   *engine.InvalidDistanceError
		inputErr      *engine.InvalidInputError
		validationErr *engine.ValidationError
		indexErr      *history.InvalidIndexError
		importErr     *history.InvalidImportDataError
	)
	switch {
	case errors.As(err, &transportErr),
		errors.As(err, &distanceErr),
		errors.As(err, &inputErr),
		errors.As(err, &validationErr),
		errors.As(err, &indexErr),
		errors.As(err, &importErr),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, greenops.ErrInvalidQuantity),
		errors.Is(err, greenops.ErrInvalidUnit):
		return exitInvalidInput
	default:
		return exitFailure
	}
}
