// Package bufsize sweeps zone-years through the transition engine to find the
// peak transient buffer occupancy per zone. The maxima size the
// fixed-capacity transition buffers of constrained implementations.
package bufsize

import (
	"sort"

	"github.com/lfriedrich/zoneshift/tzproc"
	"github.com/lfriedrich/zoneshift/zonedb"
)

// CountAndYear is a count together with the year it occurred in.
type CountAndYear struct {
	Count int
	Year  int
}

// ZoneSizes are the per-zone maxima across the scanned year range.
type ZoneSizes struct {
	// MaxActiveSize is the largest number of active transitions of any
	// single year.
	MaxActiveSize CountAndYear
	// MaxBufferSize is the largest transient buffer occupancy of any single
	// year. A fixed-capacity buffer needs at least this many slots.
	MaxBufferSize CountAndYear
}

// Estimate computes the buffer maxima for every zone of the registry across
// the years [startYear, untilYear). Link entries are skipped; they share
// their target's sizes.
func Estimate(registry zonedb.ZoneRegistry, startYear, untilYear int) (map[string]ZoneSizes, error) {
	sizes := make(map[string]ZoneSizes)
	for name, zi := range registry {
		if zi.IsLink() {
			continue
		}
		zs, err := EstimateZone(zi, startYear, untilYear)
		if err != nil {
			return nil, err
		}
		sizes[name] = zs
	}
	return sizes, nil
}

// EstimateZone computes the buffer maxima of a single zone across the years
// [startYear, untilYear). The sweep stops after scanning the first terminal
// year: later years cannot change the sizes.
func EstimateZone(zi *zonedb.ZoneInfo, startYear, untilYear int) (ZoneSizes, error) {
	p := tzproc.New(zi)

	var zs ZoneSizes
	for year := startYear; year < untilYear; year++ {
		if err := p.InitForYear(year); err != nil {
			return ZoneSizes{}, err
		}
		active, buffer := p.BufferSizes()
		if active > zs.MaxActiveSize.Count {
			zs.MaxActiveSize = CountAndYear{active, year}
		}
		if buffer > zs.MaxBufferSize.Count {
			zs.MaxBufferSize = CountAndYear{buffer, year}
		}
		if p.IsTerminalYear(year) {
			break
		}
	}
	return zs, nil
}

// MaxBufferSize returns the largest buffer size across all zones and the
// sorted names of the zones that reach it.
func MaxBufferSize(sizes map[string]ZoneSizes) (int, []string) {
	max := 0
	for _, zs := range sizes {
		if zs.MaxBufferSize.Count > max {
			max = zs.MaxBufferSize.Count
		}
	}
	var names []string
	for name, zs := range sizes {
		if zs.MaxBufferSize.Count == max {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return max, names
}
