// Command neuralthreads is a terminal client for the stylist backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "neuralthreads",
		Short:         "Talk to the AI stylist and book designers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newBookCmd())
	return cmd
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
