package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/grovetools/navshell/cli"
	"github.com/grovetools/navshell/cmd"
)

func main() {
	root := cmd.NewRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		verbose, _ := root.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(os.Stderr, verbose).Handle(err)
		os.Exit(1)
	}
}
