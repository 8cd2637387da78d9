package tzproc

import "errors"

// ErrNoTransition is returned by lookups when the queried instant is earlier
// than every transition known for the window, or when the window produced no
// transitions at all. It is a normal result for instants outside the zone's
// coverage, comparable to sql.ErrNoRows.
var ErrNoTransition = errors.New("tzproc: no matching transition")

// Corrupt-data errors indicate broken upstream zone data and are not
// recoverable. They can only be produced by a zone database that violates the
// loader contract.
var (
	ErrCorruptSuffix    = errors.New("tzproc: unknown time suffix")
	ErrCorruptNormalize = errors.New("tzproc: date outside representable range")
	ErrCorruptSort      = errors.New("tzproc: transitions out of order")
)
