// Package filebackend stores each collection as <dir>/<collection>.json.
package filebackend

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/yogatrack/internal/filex"
)

type Backend struct {
	dir string
}

// New creates dir if needed.
func New(dir string) (*Backend, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &Backend{dir: abs}, nil
}

func (b *Backend) Dir() string { return b.dir }

func (b *Backend) path(collection string) string {
	return filepath.Join(b.dir, collection+".json")
}

func (b *Backend) Read(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := os.ReadFile(b.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return doc, err
}

func (b *Backend) Write(ctx context.Context, collection string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return filex.WriteFileAtomic(b.path(collection), doc, 0o600)
}
