package raidstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// choppyDisk wraps a BackingDisk and serves at most maxChunk bytes per
// ReadAt/WriteAt call, to exercise readUnit/writeUnit's short-read and
// short-write retry loops the way a real BackingDisk occasionally
// would.
type choppyDisk struct {
	BackingDisk
	maxChunk int
}

func (c *choppyDisk) ReadAt(p []byte, off int64) (int, error) {
	if len(p) > c.maxChunk {
		p = p[:c.maxChunk]
	}
	return c.BackingDisk.ReadAt(p, off)
}

func (c *choppyDisk) WriteAt(p []byte, off int64) (int, error) {
	if len(p) > c.maxChunk {
		p = p[:c.maxChunk]
	}
	return c.BackingDisk.WriteAt(p, off)
}

func TestReadUnitLoopsOverShortReads(t *testing.T) {
	mem := NewMemDisk(64)
	want := []byte("0123456789abcdef")
	_, err := mem.WriteAt(want, 0)
	require.NoError(t, err)

	disk := &choppyDisk{BackingDisk: mem, maxChunk: 3}

	got := make([]byte, len(want))
	err = readUnit(disk, 0, 0, got, len(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestWriteUnitLoopsOverShortWrites(t *testing.T) {
	mem := NewMemDisk(64)
	disk := &choppyDisk{BackingDisk: mem, maxChunk: 4}

	want := []byte("the quick brown fox jumps")
	err := writeUnit(disk, 0, 0, want, len(want))
	require.NoError(t, err)

	got := make([]byte, len(want))
	_, err = mem.ReadAt(got, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReadUnitEOFBeforeCountIsError(t *testing.T) {
	mem := NewMemDisk(4)
	buf := make([]byte, 8)
	err := readUnit(mem, 2, 0, buf, 8)
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, 2, ioErr.Disk)
}
