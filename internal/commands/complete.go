// Where: internal/commands/complete.go
// What: Completion candidate provider for dynamic shell completion.
// Why: Supply service names from the local snapshot without prompting or downloading.
package commands

import (
	"context"
	"io"
	"strings"
)

// CompleteCmd defines hidden subcommands used by shell completion scripts.
type CompleteCmd struct {
	Services CompleteServicesCmd `cmd:"" help:"List service names for completion"`
}

type CompleteServicesCmd struct{}

// runCompleteServices stays silent on any failure so a missing snapshot
// never breaks the shell.
func runCompleteServices(_ context.Context, cli CLI, deps Dependencies) int {
	s, err := newSession(cli, deps)
	if err != nil || !s.store.Exists() {
		return 0
	}
	db, err := s.store.Load()
	if err != nil {
		return 0
	}

	seen := map[string]struct{}{}
	names := make([]string, 0, len(db.Services))
	for _, svc := range db.Services {
		if _, dup := seen[svc.Name]; dup {
			continue
		}
		seen[svc.Name] = struct{}{}
		names = append(names, svc.Name)
	}
	printCompletionList(deps.Out, names)
	return 0
}

func printCompletionList(out io.Writer, items []string) {
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		writeLine(out, item)
	}
}
