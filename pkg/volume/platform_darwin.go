//go:build darwin

package volume

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// darwinPlatform lists mounts with getfsstat. Identifiers are mount points.
type darwinPlatform struct {
	mu     sync.Mutex
	mounts map[string]unix.Statfs_t
}

func DefaultPlatform() Platform {
	return &darwinPlatform{}
}

func (p *darwinPlatform) Identifiers() ([]string, error) {
	n, err := unix.Getfsstat(nil, unix.MNT_NOWAIT)
	if err != nil {
		return nil, err
	}
	buf := make([]unix.Statfs_t, n)
	n, err = unix.Getfsstat(buf, unix.MNT_NOWAIT)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounts = make(map[string]unix.Statfs_t, n)
	ids := make([]string, 0, n)
	for _, st := range buf[:n] {
		fstype := unix.ByteSliceToString(st.Fstypename[:])
		if isPseudo(fstype) || st.Flags&unix.MNT_DONTBROWSE != 0 {
			continue
		}
		mp := unix.ByteSliceToString(st.Mntonname[:])
		if _, seen := p.mounts[mp]; !seen {
			ids = append(ids, mp)
		}
		p.mounts[mp] = st
	}
	return ids, nil
}

func (p *darwinPlatform) Describe(id string) Descriptor {
	p.mu.Lock()
	st, ok := p.mounts[id]
	p.mu.Unlock()
	desc := Descriptor{Name: id, ID: id}
	if !ok {
		return desc
	}
	desc.Filesystem = unix.ByteSliceToString(st.Fstypename[:])
	from := unix.ByteSliceToString(st.Mntfromname[:])
	if strings.HasPrefix(from, "/dev/") {
		desc.ID = filepath.Base(from)
	}
	if strings.HasPrefix(id, "/Volumes/") {
		desc.Label = filepath.Base(id)
	}
	if kind, ok := kindFromFilesystem(desc.Filesystem); ok && kind != Fixed {
		desc.Kind = kind
		return desc
	}
	switch {
	case st.Flags&unix.MNT_LOCAL == 0:
		desc.Kind = Unknown
	case strings.HasPrefix(id, "/Volumes/"):
		desc.Kind = Removable
	default:
		desc.Kind = Fixed
	}
	return desc
}

func (p *darwinPlatform) Space(id string) (total, free uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(id, &st); err != nil {
		return 0, 0, &os.PathError{Op: "statfs", Path: id, Err: err}
	}
	bsize := uint64(st.Bsize)
	return st.Blocks * bsize, st.Bfree * bsize, nil
}
