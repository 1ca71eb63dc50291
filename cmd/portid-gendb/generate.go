// Where: cmd/portid-gendb/generate.go
// What: Flag parsing and the read, convert, write pipeline.
// Why: Keep the generator testable without a network.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/antipatico/portid/internal/infra/fetch"
	"github.com/antipatico/portid/internal/infra/store"
	"github.com/antipatico/portid/internal/infra/ui"
	"github.com/antipatico/portid/internal/logging"
	"github.com/antipatico/portid/internal/meta"
	"github.com/antipatico/portid/internal/version"
)

type cli struct {
	Source   string `default:"${upstream}" help:"Upstream ports.json URL (https://, s3:// or file://)"`
	Input    string `short:"i" type:"existingfile" help:"Read the upstream listing from a local file instead of --source"`
	Output   string `short:"o" default:"portid.json" help:"Snapshot file to write"`
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"info" help:"Diagnostic log level"`
}

var newSource = fetch.New

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	var flags cli
	exitCode := -1
	parser, err := kong.New(&flags,
		kong.Name("portid-gendb"),
		kong.Description("Generate a portid database from the upstream port listing."),
		kong.Vars{"upstream": meta.UpstreamPortsURL},
		kong.Writers(out, errOut),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		return fail(errOut, err)
	}
	_, err = parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		return fail(errOut, err)
	}
	if err := logging.Configure(errOut, flags.LogLevel); err != nil {
		return fail(errOut, err)
	}

	db, stats, err := generate(ctx, flags)
	if err != nil {
		return fail(errOut, err)
	}
	if err := store.New(flags.Output).Save(db); err != nil {
		return fail(errOut, err)
	}
	slog.Info("Database generated.",
		"output", flags.Output,
		"entries", stats.Entries,
		"services", stats.Services,
		"skipped_empty", stats.SkippedEmpty,
		"skipped_invalid", stats.SkippedInvalid,
	)
	ui.New(errOut).Success(fmt.Sprintf("Wrote %s (%d ports, %d services)", flags.Output, db.PortCount(), len(db.Services)))
	return 0
}

func generate(ctx context.Context, flags cli) (*portdb.Database, portdb.GenerateStats, error) {
	location := flags.Source
	if flags.Input != "" {
		location = "file://" + flags.Input
	}
	src, err := newSource(ctx, location, fetch.Options{UserAgent: version.UserAgent()})
	if err != nil {
		return nil, portdb.GenerateStats{}, err
	}
	slog.Info("Reading upstream listing.", "source", src.Location())

	body, err := src.Open(ctx)
	if err != nil {
		return nil, portdb.GenerateStats{}, err
	}
	defer body.Close()

	upstream, err := portdb.ParseUpstream(body)
	if err != nil {
		return nil, portdb.GenerateStats{}, err
	}
	db, stats := portdb.Generate(upstream)
	return db, stats, nil
}

func fail(out io.Writer, err error) int {
	ui.New(out).Error(err.Error())
	return 1
}
