// Package tztime adapts the transition engine to the standard library's
// time.Time. A Zone answers offset, DST and abbreviation queries for civil
// timestamps and converts absolute instants into zone-local civil times while
// preserving the fold bit.
package tztime

import (
	"errors"
	"fmt"
	"time"

	"github.com/lfriedrich/zoneshift/internal/epochtime"
	"github.com/lfriedrich/zoneshift/tzproc"
	"github.com/lfriedrich/zoneshift/zonedb"
)

// ErrZoneUnknown is returned by Manager.Zone when the registry has no entry
// for the requested name.
var ErrZoneUnknown = errors.New("tztime: unknown zone")

// Zone answers time zone queries for one IANA zone. It caches derived state
// for one year at a time and must not be shared between goroutines without
// external locking.
type Zone struct {
	proc *tzproc.Processor
}

// NewZone creates a Zone from raw zone data.
func NewZone(zi *zonedb.ZoneInfo) *Zone {
	return &Zone{proc: tzproc.New(zi)}
}

// Name returns the zone name, which is the link name for links.
func (z *Zone) Name() string { return z.proc.Name() }

// IsLink reports whether the zone is a link, and if so the target name.
func (z *Zone) IsLink() (bool, string) {
	return z.proc.IsLink(), z.proc.TargetName()
}

// CivilTime is a zone-local civil timestamp with a fold disambiguator.
type CivilTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Fold                 int
}

func civilOf(t time.Time, fold int) CivilTime {
	return CivilTime{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
		Fold: fold,
	}
}

func (ct CivilTime) local() tzproc.LocalDateTime {
	return tzproc.LocalDateTime{
		Year: ct.Year, Month: ct.Month, Day: ct.Day,
		Hour: ct.Hour, Minute: ct.Minute, Second: ct.Second,
		Fold: ct.Fold,
	}
}

// OffsetInfo returns the full offset information for a civil timestamp.
func (z *Zone) OffsetInfo(ct CivilTime) (tzproc.OffsetInfo, error) {
	return z.proc.OffsetInfoForDateTime(ct.local())
}

// UTCOffset returns the total offset from UTC in effect at the civil
// timestamp.
func (z *Zone) UTCOffset(ct CivilTime) (time.Duration, error) {
	info, err := z.OffsetInfo(ct)
	if err != nil {
		return 0, err
	}
	return time.Duration(info.TotalOffsetSeconds) * time.Second, nil
}

// DST returns the DST component of the offset in effect at the civil
// timestamp.
func (z *Zone) DST(ct CivilTime) (time.Duration, error) {
	info, err := z.OffsetInfo(ct)
	if err != nil {
		return 0, err
	}
	return time.Duration(info.DstOffsetSeconds) * time.Second, nil
}

// Abbrev returns the short zone abbreviation, such as "PST", in effect at the
// civil timestamp.
func (z *Zone) Abbrev(ct CivilTime) (string, error) {
	info, err := z.OffsetInfo(ct)
	if err != nil {
		return "", err
	}
	return info.Abbrev, nil
}

// Time resolves a civil timestamp to the absolute instant it denotes in this
// zone. For a timestamp in a fold, the Fold bit picks the earlier (0) or
// later (1) instant; for a timestamp in a gap, the result uses the offset
// selected by the fold rules and therefore lands outside the gap.
func (z *Zone) Time(ct CivilTime) (time.Time, error) {
	info, err := z.OffsetInfo(ct)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve %04d-%02d-%02d %02d:%02d:%02d: %w",
			ct.Year, ct.Month, ct.Day, ct.Hour, ct.Minute, ct.Second, err)
	}
	unix := epochtime.UnixFromCivil(ct.Year, ct.Month, ct.Day, ct.Hour, ct.Minute, ct.Second) -
		int64(info.TotalOffsetSeconds)
	return time.Unix(unix, 0).UTC(), nil
}

// FromUTC converts an absolute instant into the zone-local civil time,
// preserving the fold bit for instants that fall into the repeated hour of a
// backward transition.
func (z *Zone) FromUTC(t time.Time) (CivilTime, error) {
	epochSeconds := epochtime.FromUnixSeconds(t.Unix())
	info, err := z.proc.OffsetInfoForEpochSeconds(epochSeconds)
	if err != nil {
		return CivilTime{}, err
	}
	local := t.UTC().Add(time.Duration(info.TotalOffsetSeconds) * time.Second)
	return civilOf(local, info.Fold), nil
}

// Manager is a factory of Zones over a zone registry.
type Manager struct {
	registry zonedb.ZoneRegistry
}

// NewManager creates a Manager for the given registry.
func NewManager(registry zonedb.ZoneRegistry) *Manager {
	return &Manager{registry: registry}
}

// Zone returns a new Zone for the given name or ErrZoneUnknown.
func (m *Manager) Zone(name string) (*Zone, error) {
	zi := m.registry.Get(name)
	if zi == nil {
		return nil, fmt.Errorf("%w: %s", ErrZoneUnknown, name)
	}
	return NewZone(zi), nil
}
