package raidstream

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileDiskReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk0.dat")

	disk, err := OpenFileDisk(path)
	require.NoError(t, err)
	defer disk.Close()

	data := []byte("the quick brown fox")
	_, err = disk.WriteAt(data, 0)
	require.NoError(t, err)
	require.NoError(t, disk.Flush())

	buf := make([]byte, len(data))
	n, err := disk.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)
}

func TestFileDiskSetLen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk1.dat")

	disk, err := OpenFileDisk(path)
	require.NoError(t, err)
	defer disk.Close()

	require.NoError(t, disk.SetLen(1024))
	l, err := disk.Len()
	require.NoError(t, err)
	require.Equal(t, int64(1024), l)
}
