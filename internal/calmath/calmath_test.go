package calmath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month int
		want        int
	}{
		{2021, 1, 31},
		{2021, 2, 28},
		{2020, 2, 29},
		{2000, 2, 29},
		{1900, 2, 28},
		{2021, 4, 30},
		{2021, 12, 31},
		// Month 0 means December of the previous year, 13 means January of
		// the following year.
		{2021, 0, 31},
		{2021, 13, 31},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestDayOfWeek(t *testing.T) {
	cases := []struct {
		year, month, day int
		want             int // 0=Sunday
	}{
		{2000, 1, 1, 6},  // Saturday
		{2000, 3, 1, 3},  // Wednesday
		{2021, 3, 28, 0}, // Sunday
		{1970, 1, 1, 4},  // Thursday
		{2011, 12, 29, 4},
	}
	for _, c := range cases {
		if got := DayOfWeek(c.year, c.month, c.day); got != c.want {
			t.Errorf("DayOfWeek(%d, %d, %d) = %d, want %d", c.year, c.month, c.day, got, c.want)
		}
	}
}

func TestDayOfMonth(t *testing.T) {
	type in struct {
		year, month  int
		onDayOfWeek  int
		onDayOfMonth int
	}
	type want struct {
		month, day int
	}
	const (
		sunday   = 7
		saturday = 6
	)
	cases := []struct {
		name string
		in   in
		want want
	}{
		{"exact day", in{2021, 3, 0, 23}, want{3, 23}},
		{"last Sunday", in{2021, 3, sunday, 0}, want{3, 28}},

		// Leap day.
		{"Sat>=28 in a leap year", in{2020, 2, saturday, 28}, want{2, 29}},
		{"last Saturday of a leap February", in{2020, 2, saturday, 0}, want{2, 29}},
		{"Sat>=28 in a non-leap year", in{2021, 2, saturday, 28}, want{3, 6}},

		// On-or-after.
		{"weekday on the exact day", in{2021, 3, sunday, 28}, want{3, 28}},
		{"weekday later in the month", in{2021, 3, sunday, 15}, want{3, 21}},
		{"weekday in the next month", in{2021, 3, sunday, 30}, want{4, 4}},
		{"weekday in the next year", in{2021, 12, sunday, 30}, want{13, 2}},

		// On-or-before.
		{"before, on the exact day", in{2021, 3, sunday, -28}, want{3, 28}},
		{"before, earlier in the month", in{2021, 3, sunday, -15}, want{3, 14}},
		{"before, in the previous month", in{2021, 3, sunday, -5}, want{2, 28}},
		{"before, in the previous year", in{2021, 1, sunday, -2}, want{0, 27}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, d := DayOfMonth(c.in.year, c.in.month, c.in.onDayOfWeek, c.in.onDayOfMonth)
			got := want{m, d}
			if diff := cmp.Diff(c.want, got, cmpopts.EquateComparable(want{})); diff != "" {
				t.Errorf("DayOfMonth(%+v) mismatch (-want +got):\n%s", c.in, diff)
			}
		})
	}
}

func TestCivilDaysRoundTrip(t *testing.T) {
	cases := []struct {
		year, month, day int
		want             int64
	}{
		{1970, 1, 1, 0},
		{1970, 1, 2, 1},
		{1969, 12, 31, -1},
		{2000, 1, 1, 10957},
		{2000, 3, 1, 11017},
		{1900, 1, 1, -25567},
	}
	for _, c := range cases {
		got := DaysFromCivil(c.year, c.month, c.day)
		if got != c.want {
			t.Errorf("DaysFromCivil(%d, %d, %d) = %d, want %d", c.year, c.month, c.day, got, c.want)
		}
		y, m, d := CivilFromDays(got)
		if y != c.year || m != c.month || d != c.day {
			t.Errorf("CivilFromDays(%d) = (%d, %d, %d), want (%d, %d, %d)",
				got, y, m, d, c.year, c.month, c.day)
		}
	}
}
