// Package epochtime converts between Unix seconds, the engine's internal
// epoch seconds, and civil date-time fields. It deliberately avoids
// time.Location: this code produces the data that feeds time zone lookups, so
// depending on a time zone implementation here would be circular.
package epochtime

import "github.com/lfriedrich/zoneshift/internal/calmath"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	SecondsPerDay    = 24 * secondsPerHour

	// EpochYear anchors the internal epoch. The engine counts epoch seconds
	// from EpochYear-01-01T00:00:00 UTC.
	EpochYear = 2050
)

// EpochOffsetFromUnix is the number of Unix seconds at the internal epoch,
// i.e. at 2050-01-01T00:00:00Z.
var EpochOffsetFromUnix = UnixFromCivil(EpochYear, 1, 1, 0, 0, 0)

// FromUnixSeconds converts Unix seconds to internal epoch seconds.
func FromUnixSeconds(unix int64) int64 { return unix - EpochOffsetFromUnix }

// ToUnixSeconds converts internal epoch seconds to Unix seconds.
func ToUnixSeconds(epoch int64) int64 { return epoch + EpochOffsetFromUnix }

// UnixFromCivil converts a civil date and time, interpreted as UTC in the
// proleptic Gregorian calendar, to Unix seconds. Leap seconds are ignored.
func UnixFromCivil(year, month, day, hour, minute, second int) int64 {
	days := calmath.DaysFromCivil(year, month, day)
	return days*SecondsPerDay +
		int64(hour)*secondsPerHour +
		int64(minute)*secondsPerMinute +
		int64(second)
}

// CivilFromUnix is the inverse of UnixFromCivil: it converts Unix seconds to
// civil UTC date and time fields.
func CivilFromUnix(unix int64) (year, month, day, hour, minute, second int) {
	days := unix / SecondsPerDay
	rem := unix % SecondsPerDay
	if rem < 0 {
		days--
		rem += SecondsPerDay
	}
	year, month, day = calmath.CivilFromDays(days)
	hour = int(rem / secondsPerHour)
	rem %= secondsPerHour
	minute = int(rem / secondsPerMinute)
	second = int(rem % secondsPerMinute)
	return
}

// SplitDaySeconds converts a seconds-since-midnight value into (h, m, s).
// Works only for non-negative values.
func SplitDaySeconds(seconds int) (int, int, int) {
	s := seconds % 60
	minutes := seconds / 60
	return minutes / 60, minutes % 60, s
}

// JoinDaySeconds converts (h, m, s) into seconds since midnight.
func JoinDaySeconds(h, m, s int) int {
	return (h*60+m)*60 + s
}
