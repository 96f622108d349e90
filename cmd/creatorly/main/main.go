package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/creatorly/cmd/creatorly"
	"github.com/arthur-debert/creatorly/pkg/ui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := creatorly.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, creatorly.FormatError(err, styles.ColorEnabled(os.Stderr)))
		os.Exit(1)
	}
}
