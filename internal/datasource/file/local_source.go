// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a Local data source bound to the provided filesystem path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading.
//
// A context already canceled at call time returns the context error without
// touching the filesystem. Filesystem errors are wrapped with the path while
// still permitting errors.Is checks (e.g. errors.Is(err, os.ErrNotExist)),
// which is how the extractor distinguishes a missing dataset.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}

// Path returns the underlying filesystem path.
func (l *Local) Path() string { return l.path }
