package raidstream

import (
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// rebuildDisk rewrites every stripe's unit on disk i as the XOR of the
// N-1 surviving units. It is invoked by RecoverDisk, and before
// writing anything it checks (via minNonFailedLen) that disk i's
// backing store has enough physical capacity.
func (s *Raid5Stream) rebuildDisk(i int) error {
	minLen, err := s.minNonFailedLen(i)
	if err != nil {
		return err
	}

	numStripes := minLen / s.unitSize

	entry := s.log.WithField("disk", i).WithField("stripes", numStripes).WithField("unitSize", humanize.Bytes(uint64(s.unitSize)))
	entry.Info("rebuild starting")

	for stripe := int64(0); stripe < numStripes; stripe++ {
		for b := range s.scratchUnit {
			s.scratchUnit[b] = 0
		}
		offset := stripe * s.unitSize
		for j := 0; j < s.n; j++ {
			if j == i {
				continue
			}
			if err := readUnit(s.disks[j], j, offset, s.scratchParity, int(s.unitSize)); err != nil {
				return errors.Wrapf(err, "rebuild: reading disk %d stripe %d", j, stripe)
			}
			xorInto(s.scratchUnit, s.scratchParity, int(s.unitSize))
		}
		if err := writeUnit(s.disks[i], i, offset, s.scratchUnit, int(s.unitSize)); err != nil {
			return errors.Wrapf(err, "rebuild: writing disk %d stripe %d", i, stripe)
		}
	}

	entry.Info("rebuild complete")
	s.stats.RebuildsCompleted++
	return nil
}

// minNonFailedLen returns the shortest current physical length among
// every disk other than i, and validates that disk i (about to be
// rebuilt) already has at least that much capacity, rather than
// letting rebuild fail confusingly mid-stripe with a bare IOError.
func (s *Raid5Stream) minNonFailedLen(i int) (int64, error) {
	var minLen int64 = -1
	for j := 0; j < s.n; j++ {
		if j == i {
			continue
		}
		l, err := s.disks[j].Len()
		if err != nil {
			return 0, errors.Wrapf(err, "stat disk %d", j)
		}
		if minLen == -1 || l < minLen {
			minLen = l
		}
	}
	if minLen == -1 {
		minLen = 0
	}

	targetLen, err := s.disks[i].Len()
	if err != nil {
		return 0, errors.Wrapf(err, "stat disk %d", i)
	}
	if targetLen < minLen {
		return 0, &ArgumentError{Msg: "recovered disk's backing store is smaller than its surviving peers; grow it before recovering"}
	}
	return minLen, nil
}
