// Where: internal/infra/store/store.go
// What: Local database file load/save/replace.
// Why: Own the single snapshot file and never expose a half-written one.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/moby/sys/atomicwriter"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

var errStagingClosed = errors.New("staging already committed or aborted")

// Store is the on-disk database snapshot at a fixed path.
type Store struct {
	path string
}

// New returns a store for the snapshot at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a snapshot file is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Mode().IsRegular()
}

// Load reads and decodes the snapshot. Missing or malformed files match
// portdb.ErrDatabaseUnreadable.
func (s *Store) Load() (*portdb.Database, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", portdb.ErrDatabaseUnreadable, err)
	}
	db, err := portdb.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", portdb.ErrDatabaseUnreadable, s.path, err)
	}
	slog.Debug("Loaded port database.", "path", s.path, "ports", db.PortCount(), "services", len(db.Services))
	return db, nil
}

// Save writes db atomically, replacing any previous snapshot.
func (s *Store) Save(db *portdb.Database) error {
	payload, err := db.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("%w: create data dir: %w", portdb.ErrIO, err)
	}
	if err := atomicwriter.WriteFile(s.path, payload, filePerm); err != nil {
		return fmt.Errorf("%w: write %s: %w", portdb.ErrIO, s.path, err)
	}
	return nil
}

// Replace streams r into a staged file and installs it on success.
func (s *Store) Replace(r io.Reader) error {
	staging, err := s.Stage()
	if err != nil {
		return err
	}
	if _, err := io.Copy(staging, r); err != nil {
		_ = staging.Abort()
		if errors.Is(err, portdb.ErrIO) {
			return err
		}
		return fmt.Errorf("%w: read snapshot: %w", portdb.ErrIO, err)
	}
	return staging.Commit()
}

// Stage creates the data directory if needed and opens a temporary file
// next to the snapshot. Nothing is visible at Path until Commit.
func (s *Store) Stage() (*Staging, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %w", portdb.ErrIO, err)
	}
	file, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("%w: create staging file: %w", portdb.ErrIO, err)
	}
	return &Staging{target: s.path, file: file}, nil
}

// Staging is an in-progress replacement of the snapshot.
type Staging struct {
	target string
	file   *os.File
	closed bool
}

// Write appends p to the staged file.
func (st *Staging) Write(p []byte) (int, error) {
	if st.closed {
		return 0, errStagingClosed
	}
	n, err := st.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: write staging file: %w", portdb.ErrIO, err)
	}
	return n, nil
}

// Commit validates the staged payload and renames it over the snapshot.
// The staged file is removed on any failure.
func (st *Staging) Commit() error {
	if st.closed {
		return errStagingClosed
	}
	st.closed = true
	name := st.file.Name()

	if err := st.file.Sync(); err != nil {
		_ = st.file.Close()
		_ = os.Remove(name)
		return fmt.Errorf("%w: sync staging file: %w", portdb.ErrIO, err)
	}
	if err := st.file.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("%w: close staging file: %w", portdb.ErrIO, err)
	}

	payload, err := os.ReadFile(name)
	if err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("%w: read staging file: %w", portdb.ErrIO, err)
	}
	if err := Validate(payload); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("rejected downloaded snapshot: %w", err)
	}
	if _, err := portdb.Decode(payload); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("rejected downloaded snapshot: %w: %w", portdb.ErrDatabaseUnreadable, err)
	}

	if err := os.Chmod(name, filePerm); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("%w: chmod staging file: %w", portdb.ErrIO, err)
	}
	if err := os.Rename(name, st.target); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("%w: install snapshot: %w", portdb.ErrIO, err)
	}
	return nil
}

// Abort discards the staged file. It is a no-op after Commit.
func (st *Staging) Abort() error {
	if st.closed {
		return nil
	}
	st.closed = true
	_ = st.file.Close()
	if err := os.Remove(st.file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove staging file: %w", portdb.ErrIO, err)
	}
	return nil
}
