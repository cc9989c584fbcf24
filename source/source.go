// Package source abstracts where slice files are read from: a local or
// in-memory filesystem, or an S3-compatible bucket.
package source

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when a directory or file does not exist.
// The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

type Entry struct {
	Name  string
	IsDir bool
}

// Source lists directories and opens files by slash- or OS-separated path.
// Implementations must be safe for concurrent use.
type Source interface {
	ReadDir(ctx context.Context, dir string) ([]Entry, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FS reads from an afero filesystem.
type FS struct {
	fs afero.Fs
}

func NewFS(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

// NewOS reads from the local disk.
func NewOS() *FS {
	return NewFS(afero.NewOsFs())
}

// NewMem returns an empty in-memory filesystem source, mostly for tests.
func NewMem() (*FS, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewFS(fs), fs
}

// ReadDir returns entries sorted by name.
func (s *FS) ReadDir(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(infos))
	for i, info := range infos {
		entries[i] = Entry{Name: info.Name(), IsDir: info.IsDir()}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (s *FS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fs.Open(name)
}

// IsNotFound reports whether err means a missing file or directory.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
