// Command zonebuf computes the peak transition-buffer occupancy of every zone
// in a zic source file across a year range. The output sizes the
// fixed-capacity buffers of downstream implementations.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/lfriedrich/zoneshift/bufsize"
	"github.com/lfriedrich/zoneshift/tzload"
)

var (
	fileFlag = flag.String("file", "", "zic source file to load")
	fromFlag = flag.Int("from", 2000, "first year to scan, inclusive")
	toFlag   = flag.Int("to", 2100, "last year to scan, exclusive")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	if *fileFlag == "" {
		return fmt.Errorf("usage: zonebuf -file <zic file> [-from <y>] [-to <y>]")
	}

	f, err := os.Open(*fileFlag)
	if err != nil {
		return err
	}
	defer f.Close()

	registry, err := tzload.Load(f)
	if err != nil {
		return err
	}

	sizes, err := bufsize.Estimate(registry, *fromFlag, *toFlag)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		zs := sizes[name]
		fmt.Printf("%-32s active=%d (%d) buffer=%d (%d)\n", name,
			zs.MaxActiveSize.Count, zs.MaxActiveSize.Year,
			zs.MaxBufferSize.Count, zs.MaxBufferSize.Year)
	}

	max, maxNames := bufsize.MaxBufferSize(sizes)
	fmt.Printf("max buffer size %d in %v\n", max, maxNames)
	return nil
}
