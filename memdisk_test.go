package raidstream

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemDiskReadWriteRoundTrip(t *testing.T) {
	disk := NewMemDisk(16)

	data := []byte("hello world")
	n, err := disk.WriteAt(data, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	buf := make([]byte, len(data))
	n, err = disk.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)
}

func TestMemDiskWriteAtGrows(t *testing.T) {
	disk := NewMemDisk(4)

	data := []byte("grown")
	_, err := disk.WriteAt(data, 10)
	require.NoError(t, err)

	l, err := disk.Len()
	require.NoError(t, err)
	require.Equal(t, int64(15), l)

	buf := make([]byte, 10)
	n, err := disk.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	for _, b := range buf[:n] {
		require.Equal(t, byte(0), b)
	}
}

func TestMemDiskSetLenShrinksAndGrows(t *testing.T) {
	disk := NewMemDisk(10)
	require.NoError(t, disk.SetLen(4))
	l, err := disk.Len()
	require.NoError(t, err)
	require.Equal(t, int64(4), l)

	require.NoError(t, disk.SetLen(8))
	l, err = disk.Len()
	require.NoError(t, err)
	require.Equal(t, int64(8), l)

	buf := make([]byte, 8)
	_, err = disk.ReadAt(buf, 0)
	require.NoError(t, err)
	for _, b := range buf {
		require.Equal(t, byte(0), b)
	}
}

func TestMemDiskReadAtEOF(t *testing.T) {
	disk := NewMemDisk(4)
	buf := make([]byte, 4)
	_, err := disk.ReadAt(buf, 4)
	require.ErrorIs(t, err, io.EOF)
}
