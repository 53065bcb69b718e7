// Package fileinfo describes a single path for the info command and the
// browser's status line.
package fileinfo

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/krau/fexp/common/cache"
	"github.com/krau/fexp/pkg/fserr"
)

const dirMIME = "inode/directory"

type Info struct {
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path" yaml:"path"`
	Size    int64     `json:"size" yaml:"size"`
	Mode    string    `json:"mode" yaml:"mode"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	IsDir   bool      `json:"is_dir" yaml:"is_dir"`
	Symlink bool      `json:"symlink" yaml:"symlink"`
	MIME    string    `json:"mime" yaml:"mime"`
}

func (i Info) String() string {
	return fmt.Sprintf("%s  %s  %s  %s  %s", i.Mode, humanize.IBytes(uint64(max(i.Size, 0))), humanize.Time(i.ModTime), i.MIME, i.Path)
}

// Stat describes path without following a final symlink. The MIME type is
// sniffed from the content of regular files and cached by path, size and
// modification time.
func Stat(ctx context.Context, path string) (*Info, error) {
	st, err := os.Lstat(path)
	if err != nil {
		return nil, fserr.WrapOS("stat", path, err)
	}
	info := &Info{
		Name:    st.Name(),
		Path:    path,
		Size:    st.Size(),
		Mode:    st.Mode().String(),
		ModTime: st.ModTime(),
		IsDir:   st.IsDir(),
		Symlink: st.Mode()&os.ModeSymlink != 0,
	}
	switch {
	case info.IsDir:
		info.MIME = dirMIME
	case st.Mode().IsRegular():
		info.MIME = detect(ctx, path, st)
	default:
		info.MIME = "application/octet-stream"
	}
	return info, nil
}

func detect(ctx context.Context, path string, st os.FileInfo) string {
	key := fmt.Sprintf("mime:%s:%d:%d", path, st.Size(), st.ModTime().UnixNano())
	if mime, ok := cache.Get[string](key); ok {
		return mime
	}
	logger := log.FromContext(ctx)
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		logger.Debug("MIME detection failed", "path", path, "error", err)
		return "application/octet-stream"
	}
	mime := mt.String()
	if err := cache.Set(key, mime); err != nil {
		logger.Debug("Failed to cache MIME type", "path", path, "error", err)
	}
	return mime
}
