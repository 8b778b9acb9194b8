package raidstream

import (
	"io"

	"github.com/pkg/errors"
)

// readUnit reads exactly count bytes from disk at offset into
// buf[0:count], looping over short reads the way BackingDisk
// implementations such as FileDisk may produce them. Reaching
// end-of-store before count bytes are obtained is an IOError, not a
// partial result.
func readUnit(disk BackingDisk, diskIndex int, offset int64, buf []byte, count int) error {
	read := 0
	for read < count {
		n, err := disk.ReadAt(buf[read:count], offset+int64(read))
		read += n
		if err != nil {
			if err == io.EOF && read == count {
				break
			}
			return &IOError{Disk: diskIndex, Op: "read", Err: errors.Wrapf(err, "short read at offset %d", offset)}
		}
		if n == 0 {
			return &IOError{Disk: diskIndex, Op: "read", Err: errors.Errorf("no progress at offset %d", offset+int64(read))}
		}
	}
	return nil
}

// writeUnit writes exactly count bytes from buf[0:count] to disk at
// offset, looping over short writes the same way readUnit loops over
// short reads.
func writeUnit(disk BackingDisk, diskIndex int, offset int64, buf []byte, count int) error {
	written := 0
	for written < count {
		n, err := disk.WriteAt(buf[written:count], offset+int64(written))
		written += n
		if err != nil {
			return &IOError{Disk: diskIndex, Op: "write", Err: errors.Wrapf(err, "short write at offset %d", offset)}
		}
		if n == 0 {
			return &IOError{Disk: diskIndex, Op: "write", Err: errors.Errorf("no progress at offset %d", offset+int64(written))}
		}
	}
	return nil
}
