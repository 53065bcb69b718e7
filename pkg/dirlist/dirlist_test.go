package dirlist_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/krau/fexp/pkg/dirlist"
	"github.com/krau/fexp/pkg/fserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesReturnsEveryChild(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", ".hidden", "b.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	names, err := dirlist.Default().Names(dir)
	require.NoError(t, err)

	sort.Strings(names)
	assert.Equal(t, []string{".hidden", "a.txt", "b.log", "sub"}, names)
}

func TestNamesEmptyDirectory(t *testing.T) {
	names, err := dirlist.Default().Names(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestNamesMissingDirectory(t *testing.T) {
	_, err := dirlist.Default().Names(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fserr.ErrNotFound), "got %v", err)
}

func TestNamesPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o000))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := dirlist.Default().Names(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fserr.ErrPermission), "got %v", err)
}

func TestNamesOnFileIsIOError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := dirlist.Default().Names(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fserr.ErrIO), "got %v", err)
}

func TestEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d"), 0o755))

	entries, err := dirlist.Default().Entries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]dirlist.Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.True(t, byName["d"].IsDir)
	assert.False(t, byName["f"].IsDir)
	assert.Equal(t, filepath.Join(dir, "f"), byName["f"].Path)
}
