package tzproc

import "github.com/lfriedrich/zoneshift/internal/epochtime"

// EpochYear is the year anchoring the engine's internal epoch. Epoch seconds
// count from EpochYear-01-01T00:00:00 UTC.
const EpochYear = epochtime.EpochYear

// EpochOffsetFromUnix is the number of Unix seconds at the internal epoch.
// Hosts convert their absolute instants into the engine's epoch seconds by
// subtracting it.
var EpochOffsetFromUnix = epochtime.EpochOffsetFromUnix

// ToEpochSeconds converts Unix seconds into internal epoch seconds.
func ToEpochSeconds(unixSeconds int64) int64 {
	return epochtime.FromUnixSeconds(unixSeconds)
}

// FromEpochSeconds converts internal epoch seconds into Unix seconds.
func FromEpochSeconds(epochSeconds int64) int64 {
	return epochtime.ToUnixSeconds(epochSeconds)
}
