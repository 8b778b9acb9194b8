// Package raidstream implements a RAID-5 virtualization layer over N
// independent backing byte stores ("disks").
//
// A Raid5Stream stripes logical bytes across N-1 data disks per stripe
// while maintaining a rotating parity unit on the Nth disk, so that the
// loss of any single disk still permits full reconstruction of the
// logical byte range on read.
//
// # Thread Safety
//
// A Raid5Stream is NOT safe for concurrent use. Exactly one logical
// caller may issue Read, Write, Seek, SetLength, Flush, FailDisk, or
// RecoverDisk at any time. All internal state - the logical position,
// the failure registry, and the two scratch buffers - is mutated in
// place and reused across calls without locking.
//
// # Usage Example
//
//	disks := []raidstream.BackingDisk{
//		raidstream.NewMemDisk(1024),
//		raidstream.NewMemDisk(1024),
//		raidstream.NewMemDisk(1024),
//	}
//	stream, err := raidstream.NewRaid5Stream(disks, 128)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer stream.Close()
//
//	if _, err := stream.Write(data, 0); err != nil {
//		log.Fatal(err)
//	}
//	stream.FailDisk(1)
//	buf := make([]byte, len(data))
//	n, err := stream.Read(buf, 0)
package raidstream
