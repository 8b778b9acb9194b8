package raidstream

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Whence selects the reference point for Seek, mirroring io.SeekStart
// / io.SeekCurrent / io.SeekEnd without requiring callers to import the
// io package just to call Seek.
type Whence int

const (
	SeekBegin   Whence = Whence(io.SeekStart)
	SeekCurrent Whence = Whence(io.SeekCurrent)
	SeekEnd     Whence = Whence(io.SeekEnd)
)

// Raid5Stream presents a single seekable, random-access byte stream
// striped across N BackingDisks with rotating parity on the Nth disk.
// See the package doc for the thread-safety contract.
type Raid5Stream struct {
	disks       []BackingDisk
	unitSize    int64 // U
	n           int   // N
	d           int64 // D = N-1
	stripeBytes int64 // S = U*D

	failures      failureRegistry
	degradedSince int64 // UnixNano when failures went 0 -> 1; 0 if not currently degraded
	degradedNanos int64 // accumulated degraded duration from prior failure windows

	length   int64 // L
	position int64 // P

	scratchUnit   []byte // single-unit scratch, size U
	scratchParity []byte // parity-calculation scratch, size U

	log   *logrus.Entry
	stats Stats
}

// NewRaid5Stream constructs a Raid5Stream over disks with the given
// stripe unit size. It rejects a nil or too-short disk list and a
// non-positive stripe unit. Initial L is the largest multiple of the
// stripe that fits in the smallest disk; initial P is 0.
func NewRaid5Stream(disks []BackingDisk, stripeUnitSize int64) (*Raid5Stream, error) {
	if disks == nil {
		return nil, &ArgumentError{Msg: "nil disk list"}
	}
	n := len(disks)
	if n < 3 {
		return nil, &ArgumentError{Msg: "need at least 3 disks"}
	}
	if stripeUnitSize <= 0 {
		return nil, &ArgumentError{Msg: "stripe unit size must be positive"}
	}
	for i, disk := range disks {
		if disk == nil {
			return nil, &ArgumentError{Msg: "disk list contains a nil disk"}
		}
		if _, err := disk.Len(); err != nil {
			return nil, errors.Wrapf(err, "disk %d missing Len capability", i)
		}
	}

	d := int64(n - 1)
	stripeBytes := stripeUnitSize * d

	minLen, err := smallestDiskLen(disks)
	if err != nil {
		return nil, err
	}
	initialLength := (minLen / stripeUnitSize) * stripeBytes

	s := &Raid5Stream{
		disks:         disks,
		unitSize:      stripeUnitSize,
		n:             n,
		d:             d,
		stripeBytes:   stripeBytes,
		length:        initialLength,
		position:      0,
		scratchUnit:   make([]byte, stripeUnitSize),
		scratchParity: make([]byte, stripeUnitSize),
		log:           logrus.WithField("component", "raidstream"),
	}
	return s, nil
}

func smallestDiskLen(disks []BackingDisk) (int64, error) {
	var min int64 = -1
	for i, disk := range disks {
		l, err := disk.Len()
		if err != nil {
			return 0, errors.Wrapf(err, "stat disk %d", i)
		}
		if min == -1 || l < min {
			min = l
		}
	}
	if min == -1 {
		return 0, nil
	}
	return min, nil
}

// Length returns the current logical length L.
func (s *Raid5Stream) Length() int64 {
	return s.length
}

// Position returns the current logical position P.
func (s *Raid5Stream) Position() int64 {
	return s.position
}

// SetPosition seeks to an absolute position, equivalent to
// Seek(p, SeekBegin).
func (s *Raid5Stream) SetPosition(p int64) error {
	_, err := s.Seek(p, SeekBegin)
	return err
}

// Seek moves the logical position per whence and returns the new
// position. A negative resulting position is a SeekError. Seeking past
// L is allowed: the next Read returns zero bytes, the next Write
// auto-extends.
func (s *Raid5Stream) Seek(offset int64, whence Whence) (int64, error) {
	var next int64
	switch whence {
	case SeekBegin:
		next = offset
	case SeekCurrent:
		next = s.position + offset
	case SeekEnd:
		next = s.length + offset
	default:
		return 0, &ArgumentError{Msg: "invalid seek whence"}
	}
	if next < 0 {
		return 0, &SeekError{Requested: next}
	}
	s.position = next
	return s.position, nil
}

// SetLength sets the logical length to v. Required physical size per
// disk is ceil(v/S)*U; every non-failed disk whose current store
// length is less is grown (growth zero-fills per the BackingDisk
// contract). Physical stores are never shrunk. Position is left
// untouched, even if it ends up past the new length.
func (s *Raid5Stream) SetLength(v int64) error {
	if v < 0 {
		return &ArgumentError{Msg: "negative length"}
	}

	numStripes := ceilDiv(v, s.stripeBytes)
	requiredPerDisk := numStripes * s.unitSize

	for i, disk := range s.disks {
		if s.failures.isFailed(i) {
			continue
		}
		cur, err := disk.Len()
		if err != nil {
			return errors.Wrapf(err, "stat disk %d", i)
		}
		if cur < requiredPerDisk {
			if err := disk.SetLen(requiredPerDisk); err != nil {
				return errors.Wrapf(err, "grow disk %d", i)
			}
		}
	}

	s.length = v
	return nil
}

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Flush flushes every non-failed disk.
func (s *Raid5Stream) Flush() error {
	for i, disk := range s.disks {
		if s.failures.isFailed(i) {
			continue
		}
		if err := disk.Flush(); err != nil {
			return errors.Wrapf(err, "flush disk %d", i)
		}
	}
	return nil
}

// Read moves the position to the logical offset (as Seek(offset,
// SeekBegin) does) and reads up to len(buf) bytes from there into
// buf[0:], clamped to the stream's logical length, reconstructing via
// parity if the target disk is marked failed. The position held before
// the call is not used, and offset is a stream position, not an index
// into buf. It advances the position by the number of bytes returned.
func (s *Raid5Stream) Read(buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, &ArgumentError{Msg: "negative offset"}
	}
	if _, err := s.Seek(offset, SeekBegin); err != nil {
		return 0, err
	}
	return s.read(buf, len(buf))
}

// Write moves the position to the logical offset (as Seek(offset,
// SeekBegin) does) and writes all of buf there via read-modify-write
// parity maintenance, auto-extending the logical length first if the
// write would exceed it. The position held before the call is not
// used, and offset is a stream position, not an index into buf.
func (s *Raid5Stream) Write(buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, &ArgumentError{Msg: "negative offset"}
	}
	if _, err := s.Seek(offset, SeekBegin); err != nil {
		return 0, err
	}
	if s.position+int64(len(buf)) > s.length {
		if err := s.SetLength(s.position + int64(len(buf))); err != nil {
			return 0, err
		}
	}
	return s.write(buf, len(buf))
}

// FailDisk marks disk i failed. Idempotent; performs no I/O. i must be
// a valid disk index. The first failure to bring the array from
// healthy to degraded starts the DegradedSeconds clock.
func (s *Raid5Stream) FailDisk(i int) error {
	if i < 0 || i >= s.n {
		return &ArgumentError{Msg: "disk index out of range"}
	}
	if !s.failures.isFailed(i) {
		if s.failures.count() == 0 {
			s.degradedSince = time.Now().UnixNano()
		}
		s.log.WithField("disk", i).Warn("disk marked failed")
	}
	s.failures.fail(i)
	return nil
}

// RecoverDisk clears disk i's failure mark. If the disk was not
// failed, this is a no-op with no I/O. Otherwise it runs the rebuild
// routine before clearing the mark. Clearing the last failed disk
// stops the DegradedSeconds clock and folds the elapsed window into
// the accumulated total.
func (s *Raid5Stream) RecoverDisk(i int) error {
	if i < 0 || i >= s.n {
		return &ArgumentError{Msg: "disk index out of range"}
	}
	if !s.failures.isFailed(i) {
		return nil
	}
	if err := s.rebuildDisk(i); err != nil {
		return err
	}
	s.failures.recoverBit(i)
	if s.failures.count() == 0 {
		s.degradedNanos += time.Now().UnixNano() - s.degradedSince
		s.degradedSince = 0
	}
	s.log.WithField("disk", i).Info("disk recovered")
	return nil
}

// IsDiskFailed reports whether disk i is currently marked failed.
func (s *Raid5Stream) IsDiskFailed(i int) (bool, error) {
	if i < 0 || i >= s.n {
		return false, &ArgumentError{Msg: "disk index out of range"}
	}
	return s.failures.isFailed(i), nil
}

// Close releases every backing disk, failed or not. The first error
// encountered is returned after every disk has been given a chance to
// close.
func (s *Raid5Stream) Close() error {
	var first error
	for i, disk := range s.disks {
		if err := disk.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "close disk %d", i)
		}
	}
	return first
}
