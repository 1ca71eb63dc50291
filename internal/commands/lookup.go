// Where: internal/commands/lookup.go
// What: id, list and update-db command handlers.
// Why: Validate input before any download, then query the snapshot.
package commands

import (
	"context"

	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/antipatico/portid/internal/infra/ui"
)

func runID(ctx context.Context, cli CLI, deps Dependencies) int {
	port, err := portdb.ParsePort(cli.ID.Port)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	render, err := newRenderer(deps.Out, cli.Output, cli.Format, ui.Palette{Enabled: deps.Color})
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	s, err := newSession(cli, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	db, err := s.database(ctx)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	result, err := db.Identify(port)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	if err := render.Identification(result); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	return 0
}

func runList(ctx context.Context, cli CLI, deps Dependencies) int {
	filter := portdb.Filter{Pattern: cli.List.Service, Regex: cli.List.Regex}
	if err := filter.Validate(); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	render, err := newRenderer(deps.Out, cli.Output, cli.Format, ui.Palette{Enabled: deps.Color})
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	s, err := newSession(cli, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	db, err := s.database(ctx)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	services, err := db.List(filter)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	if err := render.Services(services); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	return 0
}

func runUpdateDB(ctx context.Context, cli CLI, deps Dependencies) int {
	s, err := newSession(cli, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	if err := s.refresh(ctx); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	return 0
}
