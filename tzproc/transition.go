package tzproc

import (
	"fmt"

	"github.com/lfriedrich/zoneshift/zonedb"
)

// matchingEra is the intersection of one zone era with the query window. Its
// start is the UNTIL of the previous era (or the sentinel minimum for the
// first era), truncated into the window. Because the start is expressed in
// the previous era's time base, it is accurate to roughly a day; the
// generator normalizes the exact instants later.
type matchingEra struct {
	start DateTuple // UNTIL of the previous era, clamped to the window
	until DateTuple // UNTIL of this era, clamped to the window
	era   *zonedb.ZoneEra

	// prev links the previous matching era of the same window. Its
	// lastTransition provides the offsets in effect just before this era
	// begins.
	prev *matchingEra

	// lastTransition is the final active transition of this era, back-filled
	// by the generator.
	lastTransition *transition
}

// prevOffsets returns the standard offset and DST delta in effect just before
// the era begins: those of the previous era's last transition when available,
// otherwise the era's own standard offset with no DST.
func (m *matchingEra) prevOffsets() (int, int) {
	if m.prev != nil && m.prev.lastTransition != nil {
		t := m.prev.lastTransition
		return t.offsetSeconds(), t.deltaSeconds()
	}
	return m.era.OffsetSeconds, 0
}

func (m *matchingEra) String() string {
	return fmt.Sprintf("match(start=%s until=%s policy=%s)",
		m.start, m.until, m.era.Policy.Kind)
}

// matchStatus classifies a candidate transition against the true boundaries
// of its matching era.
type matchStatus int

const (
	statusFarPast matchStatus = iota
	statusPrior
	statusExactMatch
	statusWithinMatch
	statusFarFuture
)

func (s matchStatus) String() string {
	switch s {
	case statusFarPast:
		return "farPast"
	case statusPrior:
		return "prior"
	case statusExactMatch:
		return "exact"
	case statusWithinMatch:
		return "within"
	case statusFarFuture:
		return "farFuture"
	default:
		return "<invalid status>"
	}
}

// isActive reports whether a transition with this status is retained in the
// active list of the window.
func (s matchStatus) isActive() bool {
	return s == statusPrior || s == statusExactMatch || s == statusWithinMatch
}

// transition is one potential change of the effective offset. It comes from
// a rule activation in a specific year, from an era boundary, or from a rule
// activation shifted to an era boundary (the "most recent prior" transition).
type transition struct {
	match *matchingEra

	// transitionTime is the raw instant in its original time base. For a
	// simple era it is the era start; for a rule activation it is the rule's
	// AT instant in the candidate year. The prior transition of an era gets
	// its time clamped to the era start, with the unclamped value preserved
	// in originalTransitionTime.
	transitionTime         DateTuple
	originalTransitionTime DateTuple

	// The wall, standard and universal renderings of transitionTime,
	// expanded using the offsets of the chronologically previous transition.
	transitionTimeW DateTuple
	transitionTimeS DateTuple
	transitionTimeU DateTuple

	// start is the transition instant rendered as a wall time in this
	// transition's own offsets; until is the next transition's instant in
	// this transition's offsets. Both are filled in by the post-pass.
	start DateTuple
	until DateTuple

	// startEpochSecond is the instant of start in internal epoch seconds.
	startEpochSecond int64

	abbrev string

	// rule is the zone rule that produced this transition, nil for era
	// boundaries of simple eras.
	rule *zonedb.ZoneRule

	matchStatus matchStatus
}

func newTransition(m *matchingEra, tt DateTuple) *transition {
	return &transition{
		match:          m,
		transitionTime: tt,
		start:          m.start,
		until:          m.until,
	}
}

func (t *transition) offsetSeconds() int { return t.match.era.OffsetSeconds }

func (t *transition) deltaSeconds() int {
	if t.rule != nil {
		return t.rule.DeltaSeconds
	}
	return t.match.era.Policy.DeltaSeconds
}

func (t *transition) letter() string {
	if t.rule != nil {
		return t.rule.Letter
	}
	return ""
}

func (t *transition) format() string { return t.match.era.Format }

func (t *transition) String() string {
	s := fmt.Sprintf("t(epoch=%d status=%s tt=%s ttw=%s start=%s until=%s off=%d delta=%d abbrev=%q)",
		t.startEpochSecond, t.matchStatus, t.transitionTime, t.transitionTimeW,
		t.start, t.until, t.offsetSeconds(), t.deltaSeconds(), t.abbrev)
	if t.originalTransitionTime != (DateTuple{}) {
		s += fmt.Sprintf(" ot=%s", t.originalTransitionTime)
	}
	return s
}

// addTransitionSorted inserts t into the list keeping it ordered by the raw
// transition time at day granularity. Insertion sort is deliberate: the list
// is tiny (at most about seven entries) and the incremental insert keeps the
// storage accounting deterministic; a library sort would not.
func addTransitionSorted(ts *[]*transition, t *transition) {
	*ts = append(*ts, t)
	list := *ts
	for i := len(list) - 1; i > 0; i-- {
		curr, prev := list[i], list[i-1]
		if compareDateTupleDay(curr.transitionTime, prev.transitionTime) < 0 {
			list[i-1], list[i] = curr, prev
		}
	}
}

// checkTransitionsSorted verifies the list is ordered by raw transition time.
// A violation means the zone data broke the generator's assumptions.
func checkTransitionsSorted(ts []*transition) error {
	for i := 1; i < len(ts); i++ {
		if compareDateTupleDay(ts[i-1].transitionTime, ts[i].transitionTime) > 0 {
			return fmt.Errorf("%w: %s after %s",
				ErrCorruptSort, ts[i-1].transitionTime, ts[i].transitionTime)
		}
	}
	return nil
}
