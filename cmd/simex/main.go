package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/askiada/go-simex/internal/cli"
	"github.com/askiada/go-simex/internal/cli/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		ui.PrintError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
