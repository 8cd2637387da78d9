package tzproc

import (
	"fmt"

	"github.com/lfriedrich/zoneshift/internal/calmath"
	"github.com/lfriedrich/zoneshift/internal/epochtime"
	"github.com/lfriedrich/zoneshift/zonedb"
)

// DateTuple is a date-time value holding the time of day as seconds since
// midnight instead of h:m:s components. Zone data expresses transition
// instants like "24:00" or "25:00" which have no h:m:s representation on the
// proper day; keeping raw seconds makes the arithmetic on such values exact.
//
// The Suffix records the time base the value is expressed in: wall, standard,
// or universal.
type DateTuple struct {
	Year    int
	Month   int // 1-12 after normalization
	Day     int // 1-31 after normalization
	Seconds int // seconds since 00:00; [0, 86400) after normalization
	Suffix  zonedb.Suffix
}

// minDateTuple is the sentinel for the indefinite past. It compares less than
// every representable date and passes through normalization unchanged.
func minDateTuple(suffix zonedb.Suffix) DateTuple {
	return DateTuple{Year: zonedb.MinYear, Month: 1, Day: 1, Seconds: 0, Suffix: suffix}
}

func (dt DateTuple) String() string {
	h, m, s := epochtime.SplitDaySeconds(dt.Seconds)
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d%s",
		dt.Year, dt.Month, dt.Day, h, m, s, dt.Suffix)
}

// compareDateTuple orders two tuples by (year, month, day, seconds),
// ignoring the suffix.
func compareDateTuple(a, b DateTuple) int {
	switch {
	case a.Year < b.Year:
		return -1
	case a.Year > b.Year:
		return 1
	case a.Month < b.Month:
		return -1
	case a.Month > b.Month:
		return 1
	case a.Day < b.Day:
		return -1
	case a.Day > b.Day:
		return 1
	case a.Seconds < b.Seconds:
		return -1
	case a.Seconds > b.Seconds:
		return 1
	}
	return 0
}

// compareDateTupleDay orders two tuples by (year, month, day) only. The
// candidate insertion sort uses day granularity, matching the bounded-buffer
// accounting of the generator.
func compareDateTupleDay(a, b DateTuple) int {
	switch {
	case a.Year < b.Year:
		return -1
	case a.Year > b.Year:
		return 1
	case a.Month < b.Month:
		return -1
	case a.Month > b.Month:
		return 1
	case a.Day < b.Day:
		return -1
	case a.Day > b.Day:
		return 1
	}
	return 0
}

// subtractDateTuple returns (a - b) in seconds, ignoring the suffixes.
func subtractDateTuple(a, b DateTuple) int64 {
	diffDays := calmath.DaysFromCivil(a.Year, a.Month, a.Day) -
		calmath.DaysFromCivil(b.Year, b.Month, b.Day)
	return diffDays*epochtime.SecondsPerDay + int64(a.Seconds-b.Seconds)
}

// normalizeDateTuple brings Seconds back into [0, 86400), carrying overflow
// and underflow into the day, month and year fields. A month of 0 or 13, as
// produced by day-of-month resolution near year boundaries, is folded into
// the adjacent year first. The sentinel minimum passes through unchanged.
func normalizeDateTuple(dt DateTuple) (DateTuple, error) {
	if dt.Year == zonedb.MinYear {
		return minDateTuple(dt.Suffix), nil
	}

	year, month := dt.Year, dt.Month
	switch month {
	case 0:
		year--
		month = 12
	case 13:
		year++
		month = 1
	}

	total := calmath.DaysFromCivil(year, month, dt.Day)*epochtime.SecondsPerDay +
		int64(dt.Seconds)
	days := total / epochtime.SecondsPerDay
	secs := total % epochtime.SecondsPerDay
	if secs < 0 {
		days--
		secs += epochtime.SecondsPerDay
	}

	y, m, d := calmath.CivilFromDays(days)
	if y <= zonedb.MinYear || y >= zonedb.MaxUntilYear {
		return DateTuple{}, fmt.Errorf("%w: %s", ErrCorruptNormalize, dt)
	}
	return DateTuple{Year: y, Month: m, Day: d, Seconds: int(secs), Suffix: dt.Suffix}, nil
}

// expandDateTuple converts a tuple in any one time base into all three bases
// using the given standard offset and DST delta:
//
//	s = w - delta        u = w - delta - offset
//	w = s + delta        u = s - offset
//	w = u + delta + offset    s = u + offset
//
// All three results are normalized.
func expandDateTuple(dt DateTuple, offsetSeconds, deltaSeconds int) (w, s, u DateTuple, err error) {
	switch dt.Suffix {
	case zonedb.SuffixW:
		w = dt
		s = DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds - deltaSeconds, zonedb.SuffixS}
		u = DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds - deltaSeconds - offsetSeconds, zonedb.SuffixU}
	case zonedb.SuffixS:
		s = dt
		w = DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds + deltaSeconds, zonedb.SuffixW}
		u = DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds - offsetSeconds, zonedb.SuffixU}
	case zonedb.SuffixU:
		u = dt
		w = DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds + deltaSeconds + offsetSeconds, zonedb.SuffixW}
		s = DateTuple{dt.Year, dt.Month, dt.Day, dt.Seconds + offsetSeconds, zonedb.SuffixS}
	default:
		return w, s, u, fmt.Errorf("%w: %q in %s", ErrCorruptSuffix, byte(dt.Suffix), dt)
	}

	if w, err = normalizeDateTuple(w); err != nil {
		return w, s, u, err
	}
	if s, err = normalizeDateTuple(s); err != nil {
		return w, s, u, err
	}
	if u, err = normalizeDateTuple(u); err != nil {
		return w, s, u, err
	}
	return w, s, u, nil
}
