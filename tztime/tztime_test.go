package tztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfriedrich/zoneshift/tzload"
)

const testData = `
Rule	US	1967	2006	-	Oct	lastSun	2:00	0	S
Rule	US	1987	2006	-	Apr	Sun>=1	2:00	1:00	D
Rule	US	2007	max	-	Mar	Sun>=8	2:00	1:00	D
Rule	US	2007	max	-	Nov	Sun>=1	2:00	0	S

Zone	America/Los_Angeles	-8:00	US	P%sT

Link	America/Los_Angeles	US/Pacific
`

func newManager(t *testing.T) *Manager {
	t.Helper()
	registry, err := tzload.LoadString(testData)
	require.NoError(t, err)
	return NewManager(registry)
}

func TestManagerZone(t *testing.T) {
	m := newManager(t)

	z, err := m.Zone("America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", z.Name())

	_, err = m.Zone("Does/NotExist")
	assert.ErrorIs(t, err, ErrZoneUnknown)
}

func TestZoneOffsets(t *testing.T) {
	m := newManager(t)
	z, err := m.Zone("America/Los_Angeles")
	require.NoError(t, err)

	winter := CivilTime{Year: 2000, Month: 1, Day: 2, Hour: 3, Minute: 4, Second: 5}
	off, err := z.UTCOffset(winter)
	require.NoError(t, err)
	assert.Equal(t, -8*time.Hour, off)

	dst, err := z.DST(winter)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), dst)

	abbrev, err := z.Abbrev(winter)
	require.NoError(t, err)
	assert.Equal(t, "PST", abbrev)

	summer := CivilTime{Year: 2000, Month: 7, Day: 1, Hour: 12}
	off, err = z.UTCOffset(summer)
	require.NoError(t, err)
	assert.Equal(t, -7*time.Hour, off)
}

func TestZoneTime(t *testing.T) {
	m := newManager(t)
	z, err := m.Zone("America/Los_Angeles")
	require.NoError(t, err)

	// 2000-01-02T03:04:05-08:00 is unix 946811045.
	got, err := z.Time(CivilTime{Year: 2000, Month: 1, Day: 2, Hour: 3, Minute: 4, Second: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(946811045), got.Unix())
}

func TestZoneFromUTC(t *testing.T) {
	m := newManager(t)
	z, err := m.Zone("America/Los_Angeles")
	require.NoError(t, err)

	// 2000-10-29T08:30Z is 01:30 PDT, the first pass through the repeated
	// hour.
	first, err := z.FromUTC(time.Date(2000, 10, 29, 8, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, CivilTime{Year: 2000, Month: 10, Day: 29, Hour: 1, Minute: 30, Fold: 0}, first)

	// One hour later the wall clock repeats 01:30, now PST with fold=1.
	second, err := z.FromUTC(time.Date(2000, 10, 29, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, CivilTime{Year: 2000, Month: 10, Day: 29, Hour: 1, Minute: 30, Fold: 1}, second)
}

func TestZoneRoundTrip(t *testing.T) {
	m := newManager(t)
	z, err := m.Zone("America/Los_Angeles")
	require.NoError(t, err)

	instants := []time.Time{
		time.Date(2000, 1, 2, 11, 4, 5, 0, time.UTC),
		time.Date(2000, 4, 2, 9, 59, 59, 0, time.UTC),
		time.Date(2000, 4, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2000, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, instant := range instants {
		ct, err := z.FromUTC(instant)
		require.NoError(t, err)
		back, err := z.Time(ct)
		require.NoError(t, err)
		assert.Equal(t, instant.Unix(), back.Unix(), "round trip of %s", instant)
	}
}

func TestZoneLink(t *testing.T) {
	m := newManager(t)
	z, err := m.Zone("US/Pacific")
	require.NoError(t, err)

	isLink, target := z.IsLink()
	assert.True(t, isLink)
	assert.Equal(t, "America/Los_Angeles", target)
	assert.Equal(t, "US/Pacific", z.Name())
}
