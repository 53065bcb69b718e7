package fileinfo_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/common/cache"
	"github.com/krau/fexp/pkg/fileinfo"
	"github.com/krau/fexp/pkg/fserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) context.Context {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{ReportTimestamp: false})
	return log.WithContext(context.Background(), logger)
}

func TestStat(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, cache.Init(ctx))
	t.Cleanup(cache.Close)

	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello, plain text\n"), 0o644))

	info, err := fileinfo.Stat(ctx, txt)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", info.Name)
	assert.Equal(t, int64(18), info.Size)
	assert.False(t, info.IsDir)
	assert.True(t, strings.HasPrefix(info.MIME, "text/plain"), info.MIME)

	// a second call is answered from the cache
	again, err := fileinfo.Stat(ctx, txt)
	require.NoError(t, err)
	assert.Equal(t, info.MIME, again.MIME)

	dinfo, err := fileinfo.Stat(ctx, dir)
	require.NoError(t, err)
	assert.True(t, dinfo.IsDir)
	assert.Equal(t, "inode/directory", dinfo.MIME)
}

func TestStatMissing(t *testing.T) {
	ctx := newTestContext(t)
	_, err := fileinfo.Stat(ctx, filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, fserr.ErrNotFound)
}

func TestStatWithoutCache(t *testing.T) {
	ctx := newTestContext(t)
	png := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))

	info, err := fileinfo.Stat(ctx, png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", info.MIME)
}
