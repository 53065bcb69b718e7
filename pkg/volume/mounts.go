package volume

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

type mountEntry struct {
	Device     string
	MountPoint string
	FSType     string
}

// pseudoFilesystems never back user data and are left out of the listing.
var pseudoFilesystems = map[string]struct{}{
	"proc": {}, "sysfs": {}, "devtmpfs": {}, "devpts": {}, "tmpfs": {}, "devfs": {},
	"cgroup": {}, "cgroup2": {}, "securityfs": {}, "pstore": {}, "debugfs": {},
	"tracefs": {}, "configfs": {}, "fusectl": {}, "mqueue": {}, "hugetlbfs": {},
	"bpf": {}, "autofs": {}, "binfmt_misc": {}, "rpc_pipefs": {}, "nsfs": {},
	"efivarfs": {}, "selinuxfs": {}, "ramfs": {}, "squashfs": {}, "nullfs": {},
}

var networkFilesystems = map[string]struct{}{
	"nfs": {}, "nfs4": {}, "cifs": {}, "smb3": {}, "smbfs": {}, "afpfs": {},
	"sshfs": {}, "fuse.sshfs": {}, "9p": {}, "afs": {}, "ceph": {},
	"glusterfs": {}, "fuse.glusterfs": {}, "webdav": {}, "davfs": {}, "fuse.rclone": {},
}

var opticalFilesystems = map[string]struct{}{
	"iso9660": {}, "udf": {}, "cd9660": {},
}

var diskFilesystems = map[string]struct{}{
	"ext2": {}, "ext3": {}, "ext4": {}, "xfs": {}, "btrfs": {}, "zfs": {}, "f2fs": {},
	"jfs": {}, "reiserfs": {}, "ntfs": {}, "ntfs3": {}, "fuseblk": {}, "vfat": {},
	"exfat": {}, "hfs": {}, "hfsplus": {}, "apfs": {}, "overlay": {}, "bcachefs": {},
}

func isPseudo(fstype string) bool {
	_, ok := pseudoFilesystems[fstype]
	return ok
}

// kindFromFilesystem classifies a volume by filesystem type alone. ok is
// false when the type says nothing about the kind of device.
func kindFromFilesystem(fstype string) (kind Kind, ok bool) {
	if _, hit := networkFilesystems[fstype]; hit {
		return Network, true
	}
	if _, hit := opticalFilesystems[fstype]; hit {
		return Optical, true
	}
	if _, hit := diskFilesystems[fstype]; hit {
		return Fixed, true
	}
	return Unknown, false
}

// parseMounts reads the fstab-like format of /proc/self/mounts.
func parseMounts(r io.Reader) ([]mountEntry, error) {
	var entries []mountEntry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		entries = append(entries, mountEntry{
			Device:     unescapeMountField(fields[0]),
			MountPoint: unescapeMountField(fields[1]),
			FSType:     fields[2],
		})
	}
	return entries, sc.Err()
}

// unescapeMountField decodes the \ooo octal escapes the kernel uses for
// whitespace and backslashes.
func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				sb.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
