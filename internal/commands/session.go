// Where: internal/commands/session.go
// What: Per-invocation configuration, store and refresh wiring.
// Why: Share bootstrap and update logic between id, list and update-db.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/antipatico/portid/internal/infra/config"
	"github.com/antipatico/portid/internal/infra/fetch"
	"github.com/antipatico/portid/internal/infra/store"
	"github.com/antipatico/portid/internal/infra/ui"
	"github.com/antipatico/portid/internal/usecase/refresh"
	"github.com/dustin/go-humanize"
)

type session struct {
	cli       CLI
	deps      Dependencies
	cfg       config.Config
	store     *store.Store
	console   ui.UserInterface
	refreshed bool
}

// newSession resolves configuration in precedence order: defaults, config
// file, environment (including the env file), then flags.
func newSession(cli CLI, deps Dependencies) (*session, error) {
	if err := config.LoadEnvFile(cli.EnvFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Merge(config.Config{DataDir: cli.DataDir, UpdateURL: cli.UpdateURL})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("configuration resolved", "database", cfg.DatabasePath(), "update_url", cfg.UpdateURL)

	return &session{
		cli:     cli,
		deps:    deps,
		cfg:     cfg,
		store:   store.New(cfg.DatabasePath()),
		console: ui.NewWithEmoji(deps.ErrOut, deps.Interactive),
	}, nil
}

// database loads the snapshot, downloading it first when it is missing.
func (s *session) database(ctx context.Context) (*portdb.Database, error) {
	if !s.store.Exists() {
		slog.Info("port database missing", "path", s.store.Path())
		if err := s.refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.store.Load()
}

// refresh replaces the snapshot at most once per invocation.
func (s *session) refresh(ctx context.Context) error {
	if s.refreshed {
		return nil
	}
	src, err := s.deps.NewSource(ctx, s.cfg.UpdateURL, fetch.Options{
		UserAgent:  s.cfg.UserAgent,
		Timeout:    s.cfg.HTTPTimeout,
		S3Endpoint: s.cfg.S3Endpoint,
		S3Region:   s.cfg.S3Region,
	})
	if err != nil {
		return err
	}

	refresher := &refresh.Refresher{
		Source: src,
		Store:  s.store,
	}
	if s.deps.Confirmer != nil {
		refresher.Confirmer = announcingConfirmer{next: s.deps.Confirmer, console: s.console}
	}
	var bar *ui.ProgressBar
	if s.deps.Interactive {
		bar = ui.NewProgressBar(s.deps.ErrOut, fetch.Name(src))
		refresher.Progress = bar.Update
	}
	if s.cli.Yes {
		s.console.Info(updatingMessage)
	}

	result, err := refresher.Refresh(ctx, s.cli.Yes)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}
	s.refreshed = true
	s.console.Success(fmt.Sprintf("Port database updated (%s)", humanize.Bytes(uint64(result.Bytes))))
	return nil
}

const updatingMessage = "Updating database..."

// announcingConfirmer reports the update as soon as the user agrees, before
// the download starts.
type announcingConfirmer struct {
	next    refresh.Confirmer
	console ui.UserInterface
}

func (c announcingConfirmer) Confirm(title, description string) (bool, error) {
	ok, err := c.next.Confirm(title, description)
	if err == nil && ok {
		c.console.Info(updatingMessage)
	}
	return ok, err
}
