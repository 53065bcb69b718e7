// Package dirlist lists the immediate children of a directory.
package dirlist

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/krau/fexp/pkg/fserr"
)

// Reader reads the entries of one directory in the order the platform
// yields them.
type Reader interface {
	ReadDir(path string) ([]fs.DirEntry, error)
}

// OSReader reads directories from the local filesystem without sorting.
type OSReader struct{}

func (OSReader) ReadDir(path string) ([]fs.DirEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

type Lister struct {
	reader Reader
}

func New(r Reader) *Lister {
	if r == nil {
		r = OSReader{}
	}
	return &Lister{reader: r}
}

func Default() *Lister {
	return New(OSReader{})
}

// Names returns the bare names of the entries in path. Nothing is filtered.
func (l *Lister) Names(path string) ([]string, error) {
	entries, err := l.reader.ReadDir(path)
	if err != nil {
		return nil, fserr.WrapOS("list", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (l *Lister) Entries(path string) ([]Entry, error) {
	entries, err := l.reader.ReadDir(path)
	if err != nil {
		return nil, fserr.WrapOS("list", path, err)
	}
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, Entry{
			Name:  entry.Name(),
			Path:  filepath.Join(path, entry.Name()),
			IsDir: entry.IsDir(),
		})
	}
	return out, nil
}
