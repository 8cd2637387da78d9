// Package tzproc computes the effective UTC offset transitions of an IANA
// time zone across a 14-month window centered on a year of interest, and
// answers offset queries by absolute instant or by civil date-time with a
// fold disambiguator.
//
// A Processor holds the derived transitions for one year at a time. It is not
// safe for concurrent use; the zonedb inputs are immutable and freely
// shareable.
package tzproc

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lfriedrich/zoneshift/internal/calmath"
	"github.com/lfriedrich/zoneshift/internal/epochtime"
	"github.com/lfriedrich/zoneshift/zonedb"
)

// OffsetInfo is the result of an offset query: the offsets in effect, the
// rendered abbreviation and the fold bit of the queried instant.
type OffsetInfo struct {
	TotalOffsetSeconds int // StdOffsetSeconds + DstOffsetSeconds
	StdOffsetSeconds   int
	DstOffsetSeconds   int
	Abbrev             string
	Fold               int // 0 or 1, PEP 495 semantics
}

// LocalDateTime is a civil date-time in a zone's local time, with the fold
// bit disambiguating instants that repeat across a backward transition.
type LocalDateTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	Fold   int
}

func (dt LocalDateTime) dateTuple() DateTuple {
	return DateTuple{
		Year:    dt.Year,
		Month:   dt.Month,
		Day:     dt.Day,
		Seconds: epochtime.JoinDaySeconds(dt.Hour, dt.Minute, dt.Second),
		Suffix:  zonedb.SuffixW,
	}
}

type yearMonth struct {
	year  int
	month int
}

// Processor derives and caches the transitions of a single zone for one year
// window at a time.
type Processor struct {
	zoneInfo *zonedb.ZoneInfo // as given, possibly a link
	target   *zonedb.ZoneInfo // carrier of the era list

	year      int
	yearValid bool

	matches     []*matchingEra
	transitions []*transition
	storage     transitionStorage

	logBase *logrus.Entry
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogBase attaches a logger used for step-by-step debug tracing of the
// transition pipeline. Tracing is off when no logger is attached.
func WithLogBase(logBase *logrus.Entry) Option {
	return func(p *Processor) { p.logBase = logBase }
}

// New creates a Processor for the given zone. Links are resolved once, here;
// the processor retains both the link name and the target's era list.
func New(zi *zonedb.ZoneInfo, opts ...Option) *Processor {
	p := &Processor{
		zoneInfo: zi,
		target:   zi.Target(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the name the zone was looked up under, which is the link name
// for links.
func (p *Processor) Name() string { return p.zoneInfo.Name }

// TargetName returns the name of the link target, or "" if the zone is not a
// link.
func (p *Processor) TargetName() string {
	if p.zoneInfo.IsLink() {
		return p.target.Name
	}
	return ""
}

// IsLink reports whether the zone is a link.
func (p *Processor) IsLink() bool { return p.zoneInfo.IsLink() }

func (p *Processor) debugf(format string, args ...interface{}) {
	if p.logBase != nil {
		p.logBase.Debugf(format, args...)
	}
}

func (p *Processor) debugTransitions(header string, ts []*transition) {
	if p.logBase == nil {
		return
	}
	p.logBase.Debugf("%s: count=%d", header, len(ts))
	for _, t := range ts {
		p.logBase.Debug(t)
	}
}

// InitForYear computes the matching eras and active transitions for the
// 14-month window [Dec of year-1, Feb of year+1). The result is cached; a
// second call with the same year is a no-op. It returns a corrupt-data error
// only when the zone database violates the loader contract.
func (p *Processor) InitForYear(year int) error {
	if p.yearValid && p.year == year {
		return nil
	}
	p.debugf("InitForYear(%d): zone=%s", year, p.Name())

	p.year = year
	p.yearValid = false
	p.matches = nil
	p.transitions = nil
	p.storage.clear()

	startYM := yearMonth{year - 1, 12}
	untilYM := yearMonth{year + 1, 2}

	p.findMatches(startYM, untilYM)

	if err := p.createTransitions(); err != nil {
		return err
	}
	p.debugTransitions("raw transitions", p.transitions)

	// Era boundaries carried over from simple matches may still be in 's' or
	// 'u'; normalize everything to the wall chain before deriving bounds.
	if err := fixTransitionTimes(p.transitions); err != nil {
		return err
	}
	p.debugTransitions("fixed transitions", p.transitions)

	if err := generateStartUntilTimes(p.transitions); err != nil {
		return err
	}
	calcAbbrevs(p.transitions)
	p.debugTransitions("final transitions", p.transitions)

	p.yearValid = true
	return nil
}

// BufferSizes returns the number of active transitions of the cached year and
// the peak number of in-flight transitions the derivation needed. The peak is
// the minimum capacity a fixed-size transition buffer must have to replay the
// same zone-year.
func (p *Processor) BufferSizes() (activeSize, bufferSize int) {
	return len(p.transitions), p.storage.peak
}

// OffsetInfoForEpochSeconds returns the offsets in effect at the given
// internal epoch second. It returns ErrNoTransition when the instant is
// before the earliest transition representable in the window.
func (p *Processor) OffsetInfoForEpochSeconds(epochSeconds int64) (OffsetInfo, error) {
	unix := epochtime.ToUnixSeconds(epochSeconds)
	year, _, _, _, _, _ := epochtime.CivilFromUnix(unix)
	if err := p.InitForYear(year); err != nil {
		return OffsetInfo{}, err
	}

	match, fold := p.findTransitionForSeconds(epochSeconds)
	if match == nil {
		return OffsetInfo{}, ErrNoTransition
	}
	return toOffsetInfo(match, fold), nil
}

// OffsetInfoForDateTime returns the offsets in effect at the given civil
// date-time, resolving folds and gaps with the PEP 495 rules: in an overlap,
// fold 0 selects the earlier transition and fold 1 the later; in a gap, fold
// 0 selects the transition before the gap and fold 1 the one after.
func (p *Processor) OffsetInfoForDateTime(dt LocalDateTime) (OffsetInfo, error) {
	if err := p.InitForYear(dt.Year); err != nil {
		return OffsetInfo{}, err
	}
	match := p.findTransitionForDateTime(dt)
	if match == nil {
		return OffsetInfo{}, ErrNoTransition
	}
	return toOffsetInfo(match, dt.Fold), nil
}

func toOffsetInfo(t *transition, fold int) OffsetInfo {
	return OffsetInfo{
		TotalOffsetSeconds: t.offsetSeconds() + t.deltaSeconds(),
		StdOffsetSeconds:   t.offsetSeconds(),
		DstOffsetSeconds:   t.deltaSeconds(),
		Abbrev:             t.abbrev,
		Fold:               fold,
	}
}

// findTransitionForSeconds scans for the last transition whose start epoch
// second is at or before the query, and derives the fold bit from the overlap
// between the previous transition's until and this transition's start.
func (p *Processor) findTransitionForSeconds(epochSeconds int64) (*transition, int) {
	matching := -1
	for i, t := range p.transitions {
		if t.startEpochSecond > epochSeconds {
			break
		}
		matching = i
	}
	if matching < 0 {
		return nil, 0
	}
	return p.transitions[matching], p.determineFold(epochSeconds, matching)
}

func (p *Processor) determineFold(epochSeconds int64, matching int) int {
	if matching < 1 {
		return 0
	}
	overlap := subtractDateTuple(
		p.transitions[matching-1].until,
		p.transitions[matching].start,
	)
	if overlap <= 0 {
		return 0
	}
	if epochSeconds-p.transitions[matching].startEpochSecond >= overlap {
		return 0
	}
	return 1
}

// findTransitionForDateTime selects the transition for a civil date-time
// honoring the fold bit in overlaps and gaps.
func (p *Processor) findTransitionForDateTime(dt LocalDateTime) *transition {
	dtTime := dt.dateTuple()

	var prevExact, prevTransition *transition
	for _, t := range p.transitions {
		exact := compareDateTuple(t.start, dtTime) <= 0 &&
			compareDateTuple(dtTime, t.until) < 0
		if exact {
			if dt.Fold == 0 {
				return t
			}
			if prevExact != nil {
				// Second half of an overlap.
				return t
			}
			prevExact = t
		} else if compareDateTuple(t.start, dtTime) > 0 {
			if prevExact != nil {
				return prevExact
			}
			// In a gap.
			if dt.Fold == 0 {
				return prevTransition
			}
			return t
		}
		prevTransition = t
	}

	if prevExact != nil {
		return prevExact
	}
	return prevTransition
}

// findMatches emits a matchingEra for each zone era whose effective interval
// [prevUntil, until) overlaps the window, in era order, truncated into the
// window.
func (p *Processor) findMatches(startYM, untilYM yearMonth) {
	eras := p.target.Eras
	var prevEra *zonedb.ZoneEra
	var prevMatch *matchingEra
	for i := range eras {
		era := &eras[i]
		if eraOverlapsInterval(prevEra, era, startYM, untilYM) {
			m := createMatch(prevEra, era, startYM, untilYM)
			m.prev = prevMatch
			p.debugf("findMatches: %s", m)
			p.matches = append(p.matches, m)
			prevMatch = m
		}
		prevEra = era
	}
}

// eraOverlapsInterval tests, at (year, month) granularity, whether the era's
// effective interval [prevEra.until, era.until) intersects the window. A nil
// prevEra means the indefinite past.
func eraOverlapsInterval(prevEra, era *zonedb.ZoneEra, startYM, untilYM yearMonth) bool {
	return (prevEra == nil || compareEraToYearMonth(prevEra, untilYM) < 0) &&
		compareEraToYearMonth(era, startYM) > 0
}

// compareEraToYearMonth compares the era's UNTIL instant against a (year,
// month) with the day implicitly 1: any day past the first or any positive
// time of day pushes the era after the year-month.
func compareEraToYearMonth(era *zonedb.ZoneEra, ym yearMonth) int {
	switch {
	case era.UntilYear < ym.year:
		return -1
	case era.UntilYear > ym.year:
		return 1
	case era.UntilMonth < ym.month:
		return -1
	case era.UntilMonth > ym.month:
		return 1
	case era.UntilDay > 1:
		return 1
	case era.UntilSeconds < 0:
		return -1
	case era.UntilSeconds > 0:
		return 1
	}
	return 0
}

func eraUntilTuple(era *zonedb.ZoneEra) DateTuple {
	return DateTuple{
		Year:    era.UntilYear,
		Month:   era.UntilMonth,
		Day:     era.UntilDay,
		Seconds: era.UntilSeconds,
		Suffix:  era.UntilSuffix,
	}
}

// createMatch builds the matching era from the previous era's UNTIL (or the
// sentinel minimum) and the era's own UNTIL, clamped into the window. The
// start is expressed in the previous era's time base and is therefore only
// day-accurate; the generator normalizes the instants later.
func createMatch(prevEra, era *zonedb.ZoneEra, startYM, untilYM yearMonth) *matchingEra {
	var start DateTuple
	if prevEra == nil {
		start = minDateTuple(zonedb.SuffixW)
	} else {
		start = eraUntilTuple(prevEra)
	}
	leftBoundary := DateTuple{Year: startYM.year, Month: startYM.month, Day: 1, Suffix: zonedb.SuffixW}
	if compareDateTuple(start, leftBoundary) < 0 {
		start = leftBoundary
	}

	until := eraUntilTuple(era)
	rightBoundary := DateTuple{Year: untilYM.year, Month: untilYM.month, Day: 1, Suffix: zonedb.SuffixW}
	if compareDateTuple(until, rightBoundary) > 0 {
		until = rightBoundary
	}

	return &matchingEra{start: start, until: until, era: era}
}

func (p *Processor) createTransitions() error {
	for _, m := range p.matches {
		if err := p.createTransitionsForMatch(m); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) createTransitionsForMatch(m *matchingEra) error {
	if m.era.Policy.Kind == zonedb.PolicyNamed {
		return p.createTransitionsFromNamedMatch(m)
	}
	p.createTransitionsFromSimpleMatch(m)
	return nil
}

// createTransitionsFromSimpleMatch handles eras without a named policy: the
// era itself defines the offsets, so a single transition anchored at the era
// start is emitted directly into the active list.
func (p *Processor) createTransitionsFromSimpleMatch(m *matchingEra) {
	t := newTransition(m, m.start)
	t.matchStatus = statusExactMatch
	p.transitions = append(p.transitions, t)
	p.storage.push(1)
	m.lastTransition = t
}

// createTransitionsFromNamedMatch expands the era's rule policy into active
// transitions in four passes: candidate expansion with a fuzzy month filter,
// time-base expansion, boundary classification, and the final sorted append.
func (p *Processor) createTransitionsFromNamedMatch(m *matchingEra) error {
	p.debugf("named match: %s", m)

	// Pass 1: candidates for the whole years of the match, plus the single
	// most recent prior transition.
	candidates := p.findCandidateTransitions(m)
	p.debugTransitions("candidates", candidates)
	if err := checkTransitionsSorted(candidates); err != nil {
		return err
	}
	p.storage.pop(len(candidates))

	// Pass 2: expand each candidate's instant across the wall, standard and
	// universal bases, chained through the preceding candidate's offsets.
	if err := fixTransitionTimes(candidates); err != nil {
		return err
	}
	if err := checkTransitionsSorted(candidates); err != nil {
		return err
	}

	// Pass 3: classify against the true era boundaries and keep the actives.
	active, err := selectActiveTransitions(candidates, m)
	if err != nil {
		return err
	}
	p.debugTransitions("active", active)

	// Pass 4: the prior shift must not have broken the ordering.
	if err := checkTransitionsSorted(active); err != nil {
		return err
	}

	p.transitions = append(p.transitions, active...)
	p.storage.push(len(active))
	if len(active) > 0 {
		m.lastTransition = active[len(active)-1]
	}
	return nil
}

// findCandidateTransitions instantiates each policy rule for every interior
// year of the match and keeps the plausible candidates, tracking the single
// most recent prior transition in a reserved slot. The storage push/pop pairs
// mirror the buffer movements a fixed-capacity implementation performs.
func (p *Processor) findCandidateTransitions(m *matchingEra) []*transition {
	startY := m.start.Year
	endY := m.until.Year
	// A match ending exactly on Jan 1 00:00 pulls no transitions from that
	// year.
	if m.until.Month == 1 && m.until.Day == 1 && m.until.Seconds == 0 {
		endY--
	}

	var prior *transition
	p.storage.push(1) // reserve the prior slot

	var candidates []*transition
	rules := m.era.Policy.Policy.Rules
	for i := range rules {
		rule := &rules[i]
		for year := startY; year <= endY; year++ {
			if year < rule.FromYear || year > rule.ToYear {
				continue
			}
			t := createTransitionForYear(year, rule, m)
			p.storage.push(1) // free agent under examination
			switch compareTransitionToMatchFuzzy(t, m) {
			case -1:
				prior = selectPriorTransition(prior, t)
				p.storage.pop(1) // free agent replaces the reserved prior
			case 1:
				// Free agent becomes a candidate and keeps its slot.
				addTransitionSorted(&candidates, t)
			default:
				p.storage.pop(1) // discard
			}
		}

		// One year per rule may precede the interior span; the latest of
		// these competes for the prior slot.
		priorYear := mostRecentPriorYear(rule.FromYear, rule.ToYear, startY)
		if priorYear != zonedb.InvalidYear {
			t := createTransitionForYear(priorYear, rule, m)
			p.storage.push(1)
			prior = selectPriorTransition(prior, t)
			p.storage.pop(1)
		}
	}

	if prior != nil {
		addTransitionSorted(&candidates, prior)
	} else {
		p.storage.pop(1) // release the unused reservation
	}
	return candidates
}

// createTransitionForYear instantiates the rule in the given year. The
// resolved month may be 0 or 13 near year boundaries; normalization folds it
// into the adjacent year later.
func createTransitionForYear(year int, rule *zonedb.ZoneRule, m *matchingEra) *transition {
	month, day := calmath.DayOfMonth(year, rule.InMonth, rule.OnDayOfWeek, rule.OnDayOfMonth)
	tt := DateTuple{
		Year:    year,
		Month:   month,
		Day:     day,
		Seconds: rule.AtSeconds,
		Suffix:  rule.AtSuffix,
	}
	t := newTransition(m, tt)
	t.rule = rule
	return t
}

// mostRecentPriorYear returns the latest rule year strictly before the match
// start, or InvalidYear when the rule has none.
func mostRecentPriorYear(fromYear, toYear, startYear int) int {
	if fromYear >= startYear {
		return zonedb.InvalidYear
	}
	if toYear < startYear {
		return toYear
	}
	return startYear - 1
}

// selectPriorTransition keeps the later of two prior candidates by raw
// transition time.
func selectPriorTransition(prior, t *transition) *transition {
	if prior == nil {
		return t
	}
	if compareDateTuple(t.transitionTime, prior.transitionTime) > 0 {
		return t
	}
	return prior
}

// compareTransitionToMatchFuzzy classifies the candidate by month arithmetic
// alone: at least a month of slack on both sides keeps every real candidate
// while discarding the bulk early, before the exact time bases are known.
// Returns -1 (prior), 1 (within) or 2 (far future); never 0.
func compareTransitionToMatchFuzzy(t *transition, m *matchingEra) int {
	ttMonths := 12*t.transitionTime.Year + t.transitionTime.Month
	startMonths := 12*m.start.Year + m.start.Month
	if ttMonths < startMonths-1 {
		return -1
	}
	untilMonths := 12*m.until.Year + m.until.Month
	if untilMonths+2 <= ttMonths {
		return 2
	}
	return 1
}

// fixTransitionTimes expands each transition's instant into the wall,
// standard and universal bases using the offsets of the chronologically
// previous transition. The first transition bootstraps with itself, which
// extends it backwards in time; good enough for the left edge of the window.
func fixTransitionTimes(ts []*transition) error {
	if len(ts) == 0 {
		return nil
	}
	prev := ts[0]
	for _, t := range ts {
		w, s, u, err := expandDateTuple(t.transitionTime, prev.offsetSeconds(), prev.deltaSeconds())
		if err != nil {
			return err
		}
		t.transitionTimeW, t.transitionTimeS, t.transitionTimeU = w, s, u
		prev = t
	}
	return nil
}

// selectActiveTransitions classifies each candidate against the era
// boundaries, resolves the competition for the prior slot, and clamps the
// surviving prior to the era start.
func selectActiveTransitions(candidates []*transition, m *matchingEra) ([]*transition, error) {
	var prior *transition
	for _, t := range candidates {
		status, err := compareTransitionToMatch(t, m)
		if err != nil {
			return nil, err
		}
		t.matchStatus = status

		switch status {
		case statusExactMatch:
			// An exact match owns the era start; any prior candidate becomes
			// irrelevant even if its universal instant is earlier.
			if prior != nil {
				prior.matchStatus = statusFarPast
			}
			prior = t
		case statusPrior:
			if prior == nil {
				prior = t
			} else if prior.matchStatus == statusExactMatch {
				t.matchStatus = statusFarPast
			} else if compareDateTuple(prior.transitionTimeU, t.transitionTimeU) <= 0 {
				prior.matchStatus = statusFarPast
				prior = t
			} else {
				t.matchStatus = statusFarPast
			}
		}
	}

	// The era inherits its offset state from the prior transition, so shift
	// the prior to begin exactly at the era start.
	if prior != nil && prior.matchStatus == statusPrior {
		prior.originalTransitionTime = prior.transitionTime
		prior.transitionTime = m.start
	}

	var active []*transition
	for _, t := range candidates {
		if t.matchStatus.isActive() {
			active = append(active, t)
		}
	}
	return active, nil
}

// compareTransitionToMatch classifies a candidate, whose time bases have been
// expanded, against the true start and until boundaries of the match. The
// match start is expanded with the offsets in effect just before the era
// begins; the candidate is an exact match when any one of the three bases
// coincides.
func compareTransitionToMatch(t *transition, m *matchingEra) (matchStatus, error) {
	offset, delta := m.prevOffsets()
	stw, sts, stu, err := expandDateTuple(m.start, offset, delta)
	if err != nil {
		return 0, err
	}
	if compareDateTuple(t.transitionTimeW, stw) == 0 ||
		compareDateTuple(t.transitionTimeS, sts) == 0 ||
		compareDateTuple(t.transitionTimeU, stu) == 0 {
		return statusExactMatch, nil
	}
	if compareDateTuple(t.transitionTimeU, stu) < 0 {
		return statusPrior, nil
	}

	var tt DateTuple
	switch m.until.Suffix {
	case zonedb.SuffixW:
		tt = t.transitionTimeW
	case zonedb.SuffixS:
		tt = t.transitionTimeS
	case zonedb.SuffixU:
		tt = t.transitionTimeU
	default:
		return 0, fmt.Errorf("%w: %q in %s", ErrCorruptSuffix, byte(m.until.Suffix), m.until)
	}
	if compareDateTuple(m.until, tt) <= 0 {
		return statusFarFuture, nil
	}
	return statusWithinMatch, nil
}

// generateStartUntilTimes walks the merged active list and derives, for each
// transition, the wall start in its own offsets, the until propagated from
// the next transition's instant, and the absolute epoch second of the start.
// The epoch second is computed arithmetically because the raw wall instant
// can be an illegal time such as 24:00 while the normalized start never is.
func generateStartUntilTimes(ts []*transition) error {
	if len(ts) == 0 {
		return nil
	}

	prev := ts[0]
	for i, t := range ts {
		tt := t.transitionTimeW
		if i > 0 {
			prev.until = tt
		}

		// Shift from the previous offsets into this transition's own.
		secs := tt.Seconds - prev.offsetSeconds() - prev.deltaSeconds() +
			t.offsetSeconds() + t.deltaSeconds()
		start, err := normalizeDateTuple(DateTuple{
			Year: tt.Year, Month: tt.Month, Day: tt.Day, Seconds: secs, Suffix: zonedb.SuffixW,
		})
		if err != nil {
			return err
		}
		t.start = start

		utcOffset := t.offsetSeconds() + t.deltaSeconds()
		unix := epochtime.UnixFromCivil(start.Year, start.Month, start.Day, 0, 0, 0) +
			int64(start.Seconds) - int64(utcOffset)
		t.startEpochSecond = epochtime.FromUnixSeconds(unix)

		prev = t
	}

	// The last until is still the raw era boundary; render it as a
	// normalized wall tuple.
	last := ts[len(ts)-1]
	w, _, _, err := expandDateTuple(last.until, last.offsetSeconds(), last.deltaSeconds())
	if err != nil {
		return err
	}
	last.until = w
	return nil
}

// calcAbbrevs renders the zone format of each transition into its short
// abbreviation: "STD/DST" splits on the DST delta, "%s" substitutes the rule
// letter ("-" meaning empty), anything else is literal. An empty format
// stands for a numeric %z-style abbreviation derived from the total offset.
func calcAbbrevs(ts []*transition) {
	for _, t := range ts {
		format := t.format()
		var abbrev string
		switch {
		case strings.Contains(format, "/"):
			parts := strings.SplitN(format, "/", 2)
			if t.deltaSeconds() == 0 {
				abbrev = parts[0]
			} else {
				abbrev = parts[1]
			}
		case strings.Contains(format, "%s"):
			letter := t.letter()
			if letter == "-" {
				letter = ""
			}
			abbrev = strings.Replace(format, "%s", letter, 1)
		case format == "":
			abbrev = offsetAbbrev(t.offsetSeconds() + t.deltaSeconds())
		default:
			abbrev = format
		}
		t.abbrev = abbrev
	}
}

// offsetAbbrev renders a total offset as [+/-]hh[mm[ss]], the shortest form
// that does not lose information.
func offsetAbbrev(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h, m, s := epochtime.SplitDaySeconds(seconds)
	switch {
	case s != 0:
		return fmt.Sprintf("%s%02d%02d%02d", sign, h, m, s)
	case m != 0:
		return fmt.Sprintf("%s%02d%02d", sign, h, m)
	default:
		return fmt.Sprintf("%s%02d", sign, h)
	}
}

// IsTerminalYear reports whether the transition buffer sizes are guaranteed
// stable for every year at or after the given one: no later era boundary and
// no rule activation pattern can still change the transition count.
func (p *Processor) IsTerminalYear(year int) bool {
	eras := p.target.Eras
	last := &eras[len(eras)-1]

	if year > last.UntilYear {
		return true
	}
	if len(eras) > 1 {
		prev := &eras[len(eras)-2]
		if year < prev.UntilYear {
			return false
		}
	}

	if last.Policy.Kind != zonedb.PolicyNamed {
		return true
	}

	rules := last.Policy.Policy.Rules
	for i := range rules {
		if rules[i].FromYear > year {
			return false
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.ToYear != zonedb.MaxToYear && r.FromYear <= year && year <= r.ToYear {
			// A finite rule still covers this year; the steady state of
			// open-ended rules has not been reached.
			return false
		}
	}
	return true
}

// MatchInfo is a read-only summary of one matching era, exposed for tests and
// the debug CLI.
type MatchInfo struct {
	Start      DateTuple
	Until      DateTuple
	PolicyKind zonedb.PolicyKind
	PolicyName string // policy name for named eras, "" otherwise
}

// Matches returns summaries of the matching eras of the cached year.
func (p *Processor) Matches() []MatchInfo {
	infos := make([]MatchInfo, 0, len(p.matches))
	for _, m := range p.matches {
		info := MatchInfo{
			Start:      m.start,
			Until:      m.until,
			PolicyKind: m.era.Policy.Kind,
		}
		if m.era.Policy.Kind == zonedb.PolicyNamed {
			info.PolicyName = m.era.Policy.Policy.Name
		}
		infos = append(infos, info)
	}
	return infos
}

// TransitionInfo is a read-only summary of one active transition, exposed for
// tests and the debug CLI.
type TransitionInfo struct {
	Start            DateTuple // wall time in the transition's own offsets
	Until            DateTuple // wall time in the transition's own offsets
	StartEpochSecond int64
	OffsetSeconds    int
	DeltaSeconds     int
	Abbrev           string
}

// ActiveTransitions returns summaries of the active transitions of the
// cached year, in order.
func (p *Processor) ActiveTransitions() []TransitionInfo {
	infos := make([]TransitionInfo, 0, len(p.transitions))
	for _, t := range p.transitions {
		infos = append(infos, TransitionInfo{
			Start:            t.start,
			Until:            t.until,
			StartEpochSecond: t.startEpochSecond,
			OffsetSeconds:    t.offsetSeconds(),
			DeltaSeconds:     t.deltaSeconds(),
			Abbrev:           t.abbrev,
		})
	}
	return infos
}
