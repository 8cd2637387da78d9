package tzproc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lfriedrich/zoneshift/zonedb"
)

func TestExpandDateTuple(t *testing.T) {
	want := []DateTuple{
		{2000, 1, 30, 10800, zonedb.SuffixW},
		{2000, 1, 30, 7200, zonedb.SuffixS},
		{2000, 1, 30, 0, zonedb.SuffixU},
	}
	inputs := []DateTuple{
		{2000, 1, 30, 10800, zonedb.SuffixW},
		{2000, 1, 30, 7200, zonedb.SuffixS},
		{2000, 1, 30, 0, zonedb.SuffixU},
	}
	for _, in := range inputs {
		w, s, u, err := expandDateTuple(in, 7200, 3600)
		if err != nil {
			t.Fatalf("expandDateTuple(%s) error: %v", in, err)
		}
		got := []DateTuple{w, s, u}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("expandDateTuple(%s) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestExpandDateTupleBadSuffix(t *testing.T) {
	_, _, _, err := expandDateTuple(DateTuple{2000, 1, 1, 0, 'g'}, 0, 0)
	if !errors.Is(err, ErrCorruptSuffix) {
		t.Errorf("expandDateTuple with 'g' suffix: got %v, want ErrCorruptSuffix", err)
	}
}

func TestNormalizeDateTuple(t *testing.T) {
	cases := []struct {
		in   DateTuple
		want DateTuple
	}{
		{
			DateTuple{2000, 2, 1, 0, zonedb.SuffixW},
			DateTuple{2000, 2, 1, 0, zonedb.SuffixW},
		},
		{
			// 24:00 rolls into the next day.
			DateTuple{2000, 1, 31, 24 * 3600, zonedb.SuffixS},
			DateTuple{2000, 2, 1, 0, zonedb.SuffixS},
		},
		{
			// Negative seconds borrow from the previous day, across a leap
			// day.
			DateTuple{2000, 3, 1, -3600, zonedb.SuffixU},
			DateTuple{2000, 2, 29, 23 * 3600, zonedb.SuffixU},
		},
		{
			// Month 13 signals a year rollover from day-of-month resolution.
			DateTuple{2021, 13, 2, 0, zonedb.SuffixW},
			DateTuple{2022, 1, 2, 0, zonedb.SuffixW},
		},
		{
			// Month 0 signals a rollover into the previous year.
			DateTuple{2021, 0, 27, 0, zonedb.SuffixW},
			DateTuple{2020, 12, 27, 0, zonedb.SuffixW},
		},
		{
			// The sentinel minimum passes through.
			DateTuple{zonedb.MinYear, 1, 1, 0, zonedb.SuffixW},
			DateTuple{zonedb.MinYear, 1, 1, 0, zonedb.SuffixW},
		},
	}
	for _, c := range cases {
		got, err := normalizeDateTuple(c.in)
		if err != nil {
			t.Fatalf("normalizeDateTuple(%s) error: %v", c.in, err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("normalizeDateTuple(%s) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestSubtractDateTuple(t *testing.T) {
	cases := []struct {
		a, b DateTuple
		want int64
	}{
		{
			DateTuple{2000, 1, 1, 43, zonedb.SuffixW},
			DateTuple{2000, 1, 1, 44, zonedb.SuffixW},
			-1,
		},
		{
			DateTuple{2000, 1, 2, 43, zonedb.SuffixW},
			DateTuple{2000, 1, 1, 44, zonedb.SuffixW},
			24*3600 - 1,
		},
		{
			DateTuple{2000, 1, 2, 43, zonedb.SuffixW},
			DateTuple{2000, 2, 1, 44, zonedb.SuffixW},
			-31*24*3600 + 24*3600 - 1,
		},
	}
	for _, c := range cases {
		if got := subtractDateTuple(c.a, c.b); got != c.want {
			t.Errorf("subtractDateTuple(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareDateTuple(t *testing.T) {
	a := DateTuple{2000, 1, 1, 0, zonedb.SuffixW}
	b := DateTuple{2000, 1, 1, 1, zonedb.SuffixU}
	if got := compareDateTuple(a, b); got != -1 {
		t.Errorf("compareDateTuple(%s, %s) = %d, want -1", a, b, got)
	}
	// Day-granularity comparison ignores the seconds.
	if got := compareDateTupleDay(a, b); got != 0 {
		t.Errorf("compareDateTupleDay(%s, %s) = %d, want 0", a, b, got)
	}
}
