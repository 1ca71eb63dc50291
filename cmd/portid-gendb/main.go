// Where: cmd/portid-gendb/main.go
// What: Offline database generator entrypoint.
// Why: Convert the upstream port listing into the snapshot portid downloads.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
