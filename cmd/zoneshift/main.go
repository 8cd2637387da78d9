// Command zoneshift inspects the transitions a zone goes through in a given
// year. It parses zic source text, runs the transition engine for the
// 14-month window around the year, and prints the matching eras and active
// transitions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lfriedrich/zoneshift/internal/epochtime"
	"github.com/lfriedrich/zoneshift/tzdb/ianafetch"
	"github.com/lfriedrich/zoneshift/tzload"
	"github.com/lfriedrich/zoneshift/tzproc"
	"github.com/lfriedrich/zoneshift/zonedb"
)

var (
	fileFlag     = flag.String("file", "", "zic source file to load")
	downloadFlag = flag.Bool("download", false, "download the latest IANA release instead of reading -file")
	zoneFlag     = flag.String("zone", "", "zone name, e.g. America/Los_Angeles")
	yearFlag     = flag.Int("year", 2000, "year of interest")
	verboseFlag  = flag.Bool("v", false, "trace the transition pipeline")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	if *zoneFlag == "" {
		return fmt.Errorf("usage: zoneshift -file <zic file> -zone <name> [-year <y>] [-v]")
	}

	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	zi := registry.Get(*zoneFlag)
	if zi == nil {
		return fmt.Errorf("unknown zone %s", *zoneFlag)
	}

	var opts []tzproc.Option
	if *verboseFlag {
		logger := logrus.New()
		logger.SetLevel(logrus.DebugLevel)
		opts = append(opts, tzproc.WithLogBase(logrus.NewEntry(logger)))
	}

	p := tzproc.New(zi, opts...)
	if err := p.InitForYear(*yearFlag); err != nil {
		return err
	}

	printZone(p, *yearFlag)
	return nil
}

func loadRegistry() (zonedb.ZoneRegistry, error) {
	if *downloadFlag {
		release, _, err := ianafetch.Latest(context.Background(), "")
		if err != nil {
			return nil, fmt.Errorf("download: %w", err)
		}
		fmt.Printf("tzdb release %s\n", release.Version)
		return release.Registry()
	}
	if *fileFlag == "" {
		return nil, fmt.Errorf("either -file or -download is required")
	}
	f, err := os.Open(*fileFlag)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tzload.Load(f)
}

func printZone(p *tzproc.Processor, year int) {
	fmt.Printf("Zone %s, year %d\n", p.Name(), year)
	if p.IsLink() {
		fmt.Printf("  link to %s\n", p.TargetName())
	}

	fmt.Println("Matches")
	for _, m := range p.Matches() {
		policy := m.PolicyKind.String()
		if m.PolicyName != "" {
			policy = m.PolicyName
		}
		fmt.Printf("  start=%s until=%s policy=%s\n", m.Start, m.Until, policy)
	}

	fmt.Println("Transitions")
	for _, t := range p.ActiveTransitions() {
		unix := epochtime.ToUnixSeconds(t.StartEpochSecond)
		fmt.Printf("  start=%s until=%s epoch=%d unix=%d offset=%s abbrev=%s\n",
			t.Start, t.Until, t.StartEpochSecond, unix,
			offsetString(t.OffsetSeconds, t.DeltaSeconds), t.Abbrev)
	}

	active, buffer := p.BufferSizes()
	fmt.Printf("Buffer: active=%d peak=%d terminal=%t\n",
		active, buffer, p.IsTerminalYear(year))
}

func offsetString(offsetSeconds, deltaSeconds int) string {
	return fmt.Sprintf("UTC%s%s", hmString(offsetSeconds), hmString(deltaSeconds))
}

func hmString(secs int) string {
	sign := "+"
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	h, m, _ := epochtime.SplitDaySeconds(secs)
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}
