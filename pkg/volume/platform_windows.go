//go:build windows

package volume

import (
	"errors"
	"strings"

	"golang.org/x/sys/windows"
)

// windowsPlatform lists logical drives. Identifiers are drive roots such as
// `C:\`.
type windowsPlatform struct{}

func DefaultPlatform() Platform {
	return windowsPlatform{}
}

func (windowsPlatform) Identifiers() ([]string, error) {
	n, err := windows.GetLogicalDriveStrings(0, nil)
	if n == 0 {
		return nil, driveErr(err)
	}
	buf := make([]uint16, n)
	n, err = windows.GetLogicalDriveStrings(n, &buf[0])
	if n == 0 {
		return nil, driveErr(err)
	}
	return splitMultiString(buf[:n]), nil
}

func driveErr(err error) error {
	if err == nil {
		return errors.New("GetLogicalDriveStrings returned no drives")
	}
	return err
}

// splitMultiString splits a double-NUL-terminated list of strings.
func splitMultiString(buf []uint16) []string {
	var out []string
	start := 0
	for i, c := range buf {
		if c != 0 {
			continue
		}
		if i > start {
			out = append(out, windows.UTF16ToString(buf[start:i]))
		}
		start = i + 1
	}
	return out
}

func (windowsPlatform) Describe(id string) Descriptor {
	desc := Descriptor{Name: id, ID: strings.TrimRight(id, `:\`)}
	root, err := windows.UTF16PtrFromString(id)
	if err != nil {
		return desc
	}
	switch windows.GetDriveType(root) {
	case windows.DRIVE_REMOVABLE:
		desc.Kind = Removable
	case windows.DRIVE_FIXED:
		desc.Kind = Fixed
	case windows.DRIVE_REMOTE:
		desc.Kind = Network
	case windows.DRIVE_CDROM:
		desc.Kind = Optical
	default:
		desc.Kind = Unknown
	}
	label := make([]uint16, windows.MAX_PATH+1)
	fsName := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumeInformation(root, &label[0], uint32(len(label)), nil, nil, nil, &fsName[0], uint32(len(fsName))); err == nil {
		desc.Label = windows.UTF16ToString(label)
		desc.Filesystem = windows.UTF16ToString(fsName)
	}
	return desc
}

func (windowsPlatform) Space(id string) (total, free uint64, err error) {
	root, err := windows.UTF16PtrFromString(id)
	if err != nil {
		return 0, 0, err
	}
	if err := windows.GetDiskFreeSpaceEx(root, nil, &total, &free); err != nil {
		return 0, 0, err
	}
	return total, free, nil
}
