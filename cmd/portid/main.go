// Where: cmd/portid/main.go
// What: CLI entrypoint.
// Why: Execute portid commands with configured dependencies.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/antipatico/portid/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Run(ctx, os.Args[1:], buildDependencies())
	stop()
	os.Exit(code)
}
