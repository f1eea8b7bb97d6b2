// Package docstore archives uploaded source documents so a run can always
// be traced back to the text it was extracted from.
package docstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Store interface {
	// Put stores the document under name and returns its location.
	Put(ctx context.Context, name string, r io.Reader) (string, error)
}

// FS stores documents under a local directory.
type FS struct {
	root string
}

func NewFS(root string) (*FS, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating document root %q: %w", root, err)
	}

	return &FS{root: root}, nil
}

func (f *FS) Put(_ context.Context, name string, r io.Reader) (string, error) {
	// Uploaded filenames are untrusted; keep only the base name.
	path := filepath.Join(f.root, filepath.Base(name))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating document %q: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("writing document %q: %w", path, err)
	}

	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("closing document %q: %w", path, err)
	}

	return path, nil
}
