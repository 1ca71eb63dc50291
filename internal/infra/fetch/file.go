// Where: internal/infra/fetch/file.go
// What: Local-file snapshot source.
// Why: Support air-gapped installs that copy the snapshot by hand.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/antipatico/portid/internal/domain/portdb"
)

// FileSource reads a snapshot from the local filesystem.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Location() string {
	return "file://" + s.path
}

func (s *FileSource) Size(_ context.Context) (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return -1, fmt.Errorf("%w: stat %s: %w", portdb.ErrIO, s.path, err)
	}
	return info.Size(), nil
}

func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", portdb.ErrIO, s.path, err)
	}
	return file, nil
}
