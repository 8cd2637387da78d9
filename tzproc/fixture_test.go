package tzproc

import (
	"testing"

	"github.com/lfriedrich/zoneshift/tzload"
	"github.com/lfriedrich/zoneshift/zonedb"
)

// The fixtures mirror the IANA entries relevant to each test, trimmed to the
// eras and rule years the tested windows can observe.

const losAngelesData = `
# Rules for the United States.
Rule	US	1967	2006	-	Oct	lastSun	2:00	0	S
Rule	US	1976	1986	-	Apr	lastSun	2:00	1:00	D
Rule	US	1987	2006	-	Apr	Sun>=1	2:00	1:00	D
Rule	US	2007	max	-	Mar	Sun>=8	2:00	1:00	D
Rule	US	2007	max	-	Nov	Sun>=1	2:00	0	S

Zone	America/Los_Angeles	-8:00	US	P%sT

Link	America/Los_Angeles	US/Pacific
`

const londonData = `
Rule	EU	1981	max	-	Mar	lastSun	1:00u	1:00	S
Rule	EU	1996	max	-	Oct	lastSun	1:00u	0	-

Zone	Europe/London	0:00	EU	GMT/BST
`

const apiaData = `
Rule	WS	2010	only	-	Sep	lastSat	3:00	1	-
Rule	WS	2011	only	-	Apr	Sat>=1	4:00	0	-
Rule	WS	2011	only	-	Sep	lastSat	3:00	1	-
Rule	WS	2012	2021	-	Apr	Sun>=1	4:00	0	-

Zone	Pacific/Apia	-11:00	WS	-11/-10	2011 Dec 29 24:00
			13:00	WS	+13/+14
`

const macquarieData = `
Rule	AT	2001	max	-	Oct	Sun>=1	2:00s	1:00	D
Rule	AT	2008	max	-	Apr	Sun>=1	2:00s	0	S

Zone	Antarctica/Macquarie	10:00	AT	AE%sT	2010
			10:00	1:00	+11	2011
			11:00	-	+11
`

const abidjanData = `
Zone	Africa/Abidjan	-0:16:08	-	LMT	1912
			0:00	-	GMT
`

const casablancaData = `
Rule	Morocco	2019	2087	-	May	5	3:00	-1:00	-
Rule	Morocco	2019	2087	-	Jun	10	2:00	0	-

Zone	Africa/Casablanca	1:00	Morocco	+01/+00
`

const ammanData = `
Rule	Jordan	2014	2021	-	Mar	lastThu	24:00	1:00	S
Rule	Jordan	2014	2021	-	Oct	lastFri	0:00s	0	-

Zone	Asia/Amman	2:00	Jordan	EE%sT	2022 Oct 28 0:00s
			3:00	-	+03
`

func loadZone(t *testing.T, data, name string) *zonedb.ZoneInfo {
	t.Helper()
	registry, err := tzload.LoadString(data)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	zi := registry.Get(name)
	if zi == nil {
		t.Fatalf("zone %s not in fixture", name)
	}
	return zi
}
