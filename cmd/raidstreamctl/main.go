// Command raidstreamctl exercises a RaidStream array of file-backed
// disks from the command line. It is a thin external collaborator,
// not part of the core RAID-5 engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	raidstream "github.com/thnak/RaidStream"
)

func main() {
	var (
		diskPaths = flag.String("disks", "", "comma-separated list of backing disk file paths (>=3)")
		unitSize  = flag.Int64("unit", 4096, "stripe unit size in bytes")
		action    = flag.String("action", "status", "status|write|read|fail|recover")
		at        = flag.Int64("at", 0, "logical offset for write/read")
		failIndex = flag.Int("disk", -1, "disk index for fail/recover")
	)
	flag.Parse()

	if *diskPaths == "" {
		fmt.Fprintln(os.Stderr, "raidstreamctl: -disks is required")
		os.Exit(2)
	}

	paths := strings.Split(*diskPaths, ",")
	disks := make([]raidstream.BackingDisk, len(paths))
	for i, p := range paths {
		d, err := raidstream.OpenFileDisk(p)
		if err != nil {
			logrus.WithError(err).Fatalf("open disk %d (%s)", i, p)
		}
		disks[i] = d
	}

	stream, err := raidstream.NewRaid5Stream(disks, *unitSize)
	if err != nil {
		logrus.WithError(err).Fatal("construct stream")
	}
	defer stream.Close()

	switch *action {
	case "status":
		fmt.Printf("length=%d position=%d stats=%+v\n", stream.Length(), stream.Position(), stream.Stats())
	case "write":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logrus.WithError(err).Fatal("read stdin")
		}
		if _, err := stream.Write(data, *at); err != nil {
			logrus.WithError(err).Fatal("write")
		}
	case "read":
		buf := make([]byte, stream.Length()-*at)
		n, err := stream.Read(buf, *at)
		if err != nil {
			logrus.WithError(err).Fatal("read")
		}
		os.Stdout.Write(buf[:n])
	case "fail":
		if err := stream.FailDisk(*failIndex); err != nil {
			logrus.WithError(err).Fatal("fail disk")
		}
	case "recover":
		if err := stream.RecoverDisk(*failIndex); err != nil {
			logrus.WithError(err).Fatal("recover disk")
		}
	default:
		fmt.Fprintf(os.Stderr, "raidstreamctl: unknown action %q\n", *action)
		os.Exit(2)
	}
}
