package cronexpr

import (
	"errors"
	"testing"
	"time"
)

func TestParse_RejectsWrongFieldCount(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"", "* * * * *", "0 0 9 * * 1-5 2024"} {
		if _, err := Parse(expr); !errors.Is(err, ErrMalformedExpression) {
			t.Fatalf("Parse(%q) error = %v, want ErrMalformedExpression", expr, err)
		}
	}
}

func TestExpression_WeekdayMornings(t *testing.T) {
	t.Parallel()

	expr, err := Parse("0 0 9 * * 1-5")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	now := time.Date(2024, time.March, 14, 15, 30, 45, 0, time.UTC)
	got := expr.Next(now, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(got))
	}

	previous := now
	for _, ts := range got {
		if !ts.After(previous) {
			t.Fatalf("occurrences not strictly increasing: %v then %v", previous, ts)
		}
		if wd := ts.Weekday(); wd < time.Monday || wd > time.Friday {
			t.Fatalf("occurrence %v falls on %v", ts, wd)
		}
		if ts.Hour() != 9 || ts.Minute() != 0 || ts.Second() != 0 {
			t.Fatalf("occurrence %v is not at 09:00:00", ts)
		}
		previous = ts
	}

	// March 14 2024 is a Thursday; the first hit is Friday morning.
	want := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	if !got[0].Equal(want) {
		t.Fatalf("first occurrence = %v, want %v", got[0], want)
	}
}

func TestExpression_DayAndWeekdayUseOrSemantics(t *testing.T) {
	t.Parallel()

	// Day-of-month 15 OR Monday, standard cron behavior.
	expr, err := Parse("0 0 12 15 * 1")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	got := expr.Next(now, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}

	wantTimes := []time.Time{
		time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC), // Monday and the 15th
		time.Date(2024, time.January, 22, 12, 0, 0, 0, time.UTC), // Monday
		time.Date(2024, time.January, 29, 12, 0, 0, 0, time.UTC), // Monday
	}
	for i, want := range wantTimes {
		if !got[i].Equal(want) {
			t.Fatalf("occurrence[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestExpression_WeekdaySevenMeansSunday(t *testing.T) {
	t.Parallel()

	expr, err := Parse("0 0 8 * * 7")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	now := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	got := expr.Next(now, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(got))
	}
	for _, ts := range got {
		if ts.Weekday() != time.Sunday {
			t.Fatalf("occurrence %v is not a Sunday", ts)
		}
	}
}

func TestFoldWeekdays_KeepsValuesSorted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		values []int
		want   []int
	}{
		{values: []int{7}, want: []int{0}},
		{values: []int{1, 3, 7}, want: []int{0, 1, 3}},
		{values: []int{0, 5, 7}, want: []int{0, 5}},
		{values: []int{6, 7, 1}, want: []int{0, 1, 6}},
	}

	for _, tc := range cases {
		folded := foldWeekdays(Field{Values: tc.values})
		if len(folded.Values) != len(tc.want) {
			t.Fatalf("foldWeekdays(%v) = %v, want %v", tc.values, folded.Values, tc.want)
		}
		for i, v := range folded.Values {
			if v != tc.want[i] {
				t.Fatalf("foldWeekdays(%v) = %v, want %v", tc.values, folded.Values, tc.want)
			}
		}
	}
}

func TestExpression_UnsatisfiableReturnsShort(t *testing.T) {
	t.Parallel()

	// February 31st never exists.
	expr, err := Parse("0 0 0 31 2 *")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	got := expr.Next(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 1)
	if len(got) != 0 {
		t.Fatalf("expected no occurrences, got %v", got)
	}
}

func TestExpression_StrictlyAfterNow(t *testing.T) {
	t.Parallel()

	expr, err := Parse("0 * * * * *")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	// The cursor starts one whole second past "now", so an instant that
	// itself satisfies the expression is never emitted.
	now := time.Date(2024, time.June, 1, 10, 30, 0, 0, time.UTC)
	got := expr.Next(now, 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(got))
	}
	want := time.Date(2024, time.June, 1, 10, 31, 0, 0, time.UTC)
	if !got[0].Equal(want) {
		t.Fatalf("occurrence = %v, want %v", got[0], want)
	}
}

func TestExpression_NextStringsFormat(t *testing.T) {
	t.Parallel()

	expr, err := Parse("30 15 9 1 1 *")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	got := expr.NextStrings(now, 1)
	if len(got) != 1 || got[0] != "2025-01-01 09:15:30" {
		t.Fatalf("NextStrings = %v, want [2025-01-01 09:15:30]", got)
	}
}

func TestExpression_MalformedFieldDegradesToNoConstraint(t *testing.T) {
	t.Parallel()

	// The hour field is garbage; it contributes no constraint and the
	// expression behaves as if the field were "*".
	expr, err := Parse("0 0 bogus 1 * *")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	now := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)
	got := expr.Next(now, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(got))
	}
	want := time.Date(2024, time.March, 1, 11, 0, 0, 0, time.UTC)
	if !got[0].Equal(want) {
		t.Fatalf("occurrence = %v, want %v", got[0], want)
	}
}
