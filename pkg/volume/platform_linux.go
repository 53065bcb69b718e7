//go:build linux

package volume

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// linuxPlatform reads mounts from procfs and capacity from statfs.
// Identifiers are mount points.
type linuxPlatform struct {
	mountsFile string
	devDir     string
	sysBlock   string
	byLabel    string

	mu     sync.Mutex
	mounts map[string]mountEntry
}

func DefaultPlatform() Platform {
	return &linuxPlatform{
		mountsFile: "/proc/self/mounts",
		devDir:     "/dev",
		sysBlock:   "/sys/class/block",
		byLabel:    "/dev/disk/by-label",
	}
}

func (p *linuxPlatform) Identifiers() ([]string, error) {
	f, err := os.Open(p.mountsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := parseMounts(f)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounts = make(map[string]mountEntry, len(entries))
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, seen := p.mounts[entry.MountPoint]; !seen {
			order = append(order, entry.MountPoint)
		}
		// a later mount on the same point hides the earlier one
		p.mounts[entry.MountPoint] = entry
	}
	ids := make([]string, 0, len(order))
	for _, mp := range order {
		if isPseudo(p.mounts[mp].FSType) {
			delete(p.mounts, mp)
			continue
		}
		ids = append(ids, mp)
	}
	return ids, nil
}

func (p *linuxPlatform) Describe(id string) Descriptor {
	p.mu.Lock()
	entry, ok := p.mounts[id]
	p.mu.Unlock()
	desc := Descriptor{Name: id, ID: id}
	if !ok {
		return desc
	}
	desc.Filesystem = entry.FSType
	if strings.HasPrefix(entry.Device, "/dev/") {
		desc.ID = filepath.Base(entry.Device)
		desc.Label = p.label(entry.Device)
	} else if entry.Device != "" {
		desc.ID = entry.Device
	}
	desc.Kind = p.kind(entry)
	return desc
}

func (p *linuxPlatform) kind(entry mountEntry) Kind {
	if kind, ok := kindFromFilesystem(entry.FSType); ok && kind != Fixed {
		return kind
	}
	if strings.HasPrefix(entry.Device, "/dev/") {
		// sysfs marks optical drives removable too
		if strings.HasPrefix(filepath.Base(entry.Device), "sr") {
			return Optical
		}
		if p.removable(entry.Device) {
			return Removable
		}
		return Fixed
	}
	kind, _ := kindFromFilesystem(entry.FSType)
	return kind
}

// removable reports the sysfs removable flag of the device or, for a
// partition, of the disk that holds it.
func (p *linuxPlatform) removable(device string) bool {
	dev, err := filepath.EvalSymlinks(p.devPath(device))
	if err != nil {
		dev = device
	}
	node := filepath.Join(p.sysBlock, filepath.Base(dev))
	resolved, err := filepath.EvalSymlinks(node)
	if err != nil {
		return false
	}
	for _, dir := range []string{resolved, filepath.Dir(resolved)} {
		data, err := os.ReadFile(filepath.Join(dir, "removable"))
		if err == nil {
			return strings.TrimSpace(string(data)) == "1"
		}
	}
	return false
}

// devPath maps a /dev device name from the mount table into devDir.
func (p *linuxPlatform) devPath(device string) string {
	return filepath.Join(p.devDir, strings.TrimPrefix(device, "/dev/"))
}

func (p *linuxPlatform) label(device string) string {
	dev, err := filepath.EvalSymlinks(p.devPath(device))
	if err != nil {
		return ""
	}
	entries, err := os.ReadDir(p.byLabel)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		target, err := filepath.EvalSymlinks(filepath.Join(p.byLabel, entry.Name()))
		if err == nil && target == dev {
			return strings.ReplaceAll(entry.Name(), `\x20`, " ")
		}
	}
	return ""
}

func (p *linuxPlatform) Space(id string) (total, free uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(id, &st); err != nil {
		return 0, 0, &os.PathError{Op: "statfs", Path: id, Err: err}
	}
	bsize := uint64(st.Bsize)
	return st.Blocks * bsize, st.Bfree * bsize, nil
}
