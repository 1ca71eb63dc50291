// Where: internal/usecase/refresh/refresh.go
// What: Database refresh: confirm, probe, stream, install.
// Why: Replace the local snapshot with a remote one without ever exposing a partial file.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/antipatico/portid/internal/infra/fetch"
	"github.com/antipatico/portid/internal/infra/store"
)

// ChunkSize is the read size used while streaming a snapshot.
const ChunkSize = 1024

const (
	// ConfirmTitle is the question asked before any download.
	ConfirmTitle = "Do you want to update the port database?"
	// Disclaimer explains what the user is trusting by answering yes.
	Disclaimer = `You are trying to update the internal database.

Proceeding will replace the old data. You are going to download a JSON file
over HTTPS, which portid will later use to identify and list services. Bugs in
JSON decoding or in the HTTP stack could be exploited by a malicious snapshot.

By continuing you trust the author of this tool, the maintainers of the
upstream port listing, the snapshot host, the Go toolchain, the certificate
authorities installed on this machine, and the maintainers of your operating
system.`
)

// Confirmer asks the user for an explicit yes/no answer.
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

// ProgressFunc observes streaming progress. total is -1 when unknown.
type ProgressFunc func(written, total int64)

// Refresher replaces the store's snapshot with the one served by Source.
type Refresher struct {
	Source    fetch.Source
	Store     *store.Store
	Confirmer Confirmer
	Progress  ProgressFunc
}

// Result describes a completed refresh.
type Result struct {
	Location string
	Path     string
	Bytes    int64
}

// Refresh downloads and installs a new snapshot. Unless confirmed is true the
// Confirmer must answer yes first; a refusal returns portdb.ErrUserDeclined
// before anything touches the network or the disk.
func (r *Refresher) Refresh(ctx context.Context, confirmed bool) (Result, error) {
	if r.Source == nil || r.Store == nil {
		return Result{}, errRefresherIncomplete
	}
	if !confirmed {
		if err := r.confirm(); err != nil {
			return Result{}, err
		}
	}

	location := r.Source.Location()
	total, err := r.Source.Size(ctx)
	if err != nil {
		return Result{}, err
	}
	slog.Debug("Downloading snapshot.", "source", location, "size", total)

	body, err := r.Source.Open(ctx)
	if err != nil {
		return Result{}, err
	}
	defer body.Close()

	staging, err := r.Store.Stage()
	if err != nil {
		return Result{}, err
	}
	written, err := r.stream(ctx, staging, body, total)
	if err != nil {
		_ = staging.Abort()
		return Result{}, err
	}
	if err := staging.Commit(); err != nil {
		return Result{}, err
	}

	slog.Info("Port database updated.", "source", location, "path", r.Store.Path(), "bytes", written)
	return Result{Location: location, Path: r.Store.Path(), Bytes: written}, nil
}

func (r *Refresher) confirm() error {
	if r.Confirmer == nil {
		return fmt.Errorf("%w: confirmation required, rerun with --yes", portdb.ErrUserDeclined)
	}
	ok, err := r.Confirmer.Confirm(ConfirmTitle, Disclaimer)
	if err != nil {
		return fmt.Errorf("%w: %w", portdb.ErrUserDeclined, err)
	}
	if !ok {
		return portdb.ErrUserDeclined
	}
	return nil
}

// stream copies src to dst one chunk at a time, reporting after every chunk.
func (r *Refresher) stream(ctx context.Context, dst io.Writer, src io.Reader, total int64) (int64, error) {
	buf := make([]byte, ChunkSize)
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("%w: download interrupted: %w", portdb.ErrNetwork, err)
		}
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
			if r.Progress != nil {
				r.Progress(written, total)
			}
		}
		if errors.Is(readErr, io.EOF) {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("%w: read %s: %w", portdb.ErrNetwork, r.Source.Location(), readErr)
		}
	}
}
