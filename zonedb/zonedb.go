// Package zonedb defines the in-memory model of the IANA time zone database
// as consumed by the transition engine: recurrence rules grouped into named
// policies, zone eras referencing those policies, and zones (or links to
// zones) made of eras.
//
// All values in this package are immutable once constructed and may be shared
// freely between goroutines.
package zonedb

// Sentinel years. The zone database encodes open-ended intervals with marker
// years well outside the range of real zone data.
const (
	// InvalidYear is guaranteed not to appear in any entry. Functions use it
	// to signal "no year found".
	InvalidYear = -32768

	// MinYear marks the indefinite past.
	MinYear = -32767

	// MaxUntilYear marks the indefinite future in a ZoneEra UNTIL field.
	MaxUntilYear = 32767

	// MaxToYear marks the indefinite future in a ZoneRule TO field.
	MaxToYear = MaxUntilYear - 1
)

// Suffix identifies the time base of a time-of-day value: wall clock,
// standard time, or universal time. The zic(8) suffixes 'g' and 'z' are
// aliases for 'u' in the wild but are not accepted by this model; the loader
// rejects them.
type Suffix byte

const (
	SuffixW Suffix = 'w' // wall clock time, standard offset plus DST
	SuffixS Suffix = 's' // standard time, no DST adjustment
	SuffixU Suffix = 'u' // universal time
)

func (s Suffix) String() string {
	switch s {
	case SuffixW, SuffixS, SuffixU:
		return string(byte(s))
	default:
		return "<invalid suffix>"
	}
}

// ZoneRule is one recurrence rule of a policy, a distilled form of a zic Rule
// line. The AT time is kept as seconds since 00:00 so that values such as
// 24:00 or 25:00 remain representable.
type ZoneRule struct {
	FromYear int // first year the rule applies, inclusive
	ToYear   int // last year the rule applies, inclusive; MaxToYear means open-ended

	InMonth int // 1-12

	// OnDayOfWeek is 1=Monday..7=Sunday, or 0 when OnDayOfMonth is an exact
	// day. OnDayOfMonth is 1-31; 0 combined with a weekday means "last
	// <weekday> of the month"; a negative value means "<weekday> on or before
	// the |value|-th".
	OnDayOfWeek  int
	OnDayOfMonth int

	AtSeconds int // time of day of the transition, seconds since 00:00
	AtSuffix  Suffix

	DeltaSeconds int // offset from standard time while the rule is in effect

	// Letter is the variable part of a zone FORMAT, e.g. the "D" in "PDT".
	// "-" denotes an empty variable part.
	Letter string
}

// ZonePolicy is a named, ordered set of recurrence rules. Rules are sorted by
// (FromYear, InMonth) as guaranteed by the loader.
type ZonePolicy struct {
	Name  string
	Rules []ZoneRule
}

// PolicyKind discriminates the RULES column of a zone era.
type PolicyKind int

const (
	// PolicyNone means standard time always applies ("-" in zic).
	PolicyNone PolicyKind = iota
	// PolicyFixed means a fixed DST delta applies for the whole era.
	PolicyFixed
	// PolicyNamed means the era references a named rule policy.
	PolicyNamed
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyNone:
		return "None"
	case PolicyFixed:
		return "Fixed"
	case PolicyNamed:
		return "Named"
	default:
		return "<invalid policy kind>"
	}
}

// PolicyRef is the tagged RULES column of a ZoneEra: no DST, a fixed DST
// delta, or a reference to a named policy.
type PolicyRef struct {
	Kind PolicyKind

	// DeltaSeconds is the fixed DST offset. Meaningful only when Kind is
	// PolicyFixed; zero otherwise.
	DeltaSeconds int

	// Policy is set when Kind is PolicyNamed.
	Policy *ZonePolicy
}

// ZoneEra is one era of a zone: an interval with a constant standard offset
// governed by a single policy reference, ending at the UNTIL instant. The
// era's start is implicit: it is the UNTIL of the previous era.
type ZoneEra struct {
	OffsetSeconds int // standard offset from UTC
	Policy        PolicyRef

	// Format is the abbreviation template: either "STD/DST", a template
	// containing "%s" for the rule letter, or a literal.
	Format string

	// UNTIL instant, exclusive. The terminal era has UntilYear ==
	// MaxUntilYear. Day expressions are resolved to a concrete day of month
	// by the loader.
	UntilYear    int
	UntilMonth   int // 1-12
	UntilDay     int // 1-31
	UntilSeconds int // seconds since 00:00; may be 86400 for "24:00"
	UntilSuffix  Suffix
}

// ZoneInfo is a zone with its era list, or a link that delegates its eras to
// a target zone while keeping its own name.
type ZoneInfo struct {
	Name string

	// Eras of the zone in strictly ascending UNTIL order. Empty for links.
	Eras []ZoneEra

	// Link is the resolved target when this entry is a link, nil otherwise.
	Link *ZoneInfo
}

// IsLink reports whether the entry is a link.
func (zi *ZoneInfo) IsLink() bool { return zi.Link != nil }

// Target returns the zone that carries the era list: the link target for
// links, the receiver itself otherwise.
func (zi *ZoneInfo) Target() *ZoneInfo {
	if zi.Link != nil {
		return zi.Link
	}
	return zi
}

// ZoneRegistry maps zone names (including link names) to their ZoneInfo.
type ZoneRegistry map[string]*ZoneInfo

// Get returns the ZoneInfo for the given name, or nil if the registry has no
// such zone.
func (r ZoneRegistry) Get(name string) *ZoneInfo { return r[name] }
