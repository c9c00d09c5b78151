package services

import (
	"testing"
	"time"
)

func TestReconcileScenarios(t *testing.T) {
	tests := []struct {
		name   string
		starts []string
		want   [][2]string
	}{
		{
			name:   "empty input",
			starts: nil,
			want:   [][2]string{},
		},
		{
			name:   "single start gets default length",
			starts: []string{"2024-01-01"},
			want:   [][2]string{{"2024-01-01", "2024-01-29"}},
		},
		{
			name:   "two starts",
			starts: []string{"2024-01-01", "2024-02-01"},
			want: [][2]string{
				{"2024-02-01", "2024-02-29"},
				{"2024-01-01", "2024-01-31"},
			},
		},
		{
			name:   "unsorted input",
			starts: []string{"2024-02-01", "2024-03-01", "2024-01-01"},
			want: [][2]string{
				{"2024-03-01", "2024-03-29"},
				{"2024-02-01", "2024-02-29"},
				{"2024-01-01", "2024-01-31"},
			},
		},
		{
			name:   "adjacent days",
			starts: []string{"2024-05-02", "2024-05-01"},
			want: [][2]string{
				{"2024-05-02", "2024-05-30"},
				{"2024-05-01", "2024-05-01"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := Reconcile(parseDays(testCase.starts...))
			assertIntervals(t, got, testCase.want)
		})
	}
}

func TestReconcileDeduplicatesByCalendarDay(t *testing.T) {
	morning := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.January, 1, 21, 30, 0, 0, time.UTC)

	got := Reconcile([]time.Time{morning, evening, morning})
	if len(got) != 1 {
		t.Fatalf("expected 1 interval, got %d", len(got))
	}
	if !got[0].StartDate.Equal(mustParseDay("2024-01-01")) {
		t.Fatalf("expected start normalized to midnight, got %s", got[0].StartDate)
	}
}

func TestReconcileSkipsZeroDates(t *testing.T) {
	got := Reconcile([]time.Time{{}, mustParseDay("2024-01-01")})
	assertIntervals(t, got, [][2]string{{"2024-01-01", "2024-01-29"}})
}

func TestReconcileIsIdempotent(t *testing.T) {
	inputs := [][]string{
		{"2024-01-01"},
		{"2024-03-01", "2024-01-01", "2024-02-01"},
		{"2023-12-31", "2024-01-01", "2024-01-01", "2024-06-30"},
	}

	for _, starts := range inputs {
		first := Reconcile(parseDays(starts...))
		second := Reconcile(StartDates(first))
		if len(first) != len(second) {
			t.Fatalf("expected %d intervals after re-reconcile, got %d", len(first), len(second))
		}
		for i := range first {
			if !first[i].StartDate.Equal(second[i].StartDate) || !first[i].EndDate.Equal(second[i].EndDate) {
				t.Fatalf("interval %d changed after re-reconcile: %+v vs %+v", i, first[i], second[i])
			}
		}
	}
}

func TestReconcileInvariants(t *testing.T) {
	starts := parseDays("2023-11-05", "2024-02-29", "2023-12-01", "2024-01-15", "2024-01-16", "2023-12-31")
	intervals := Reconcile(starts)

	if !intervals[0].EndDate.Equal(AddDays(intervals[0].StartDate, 28)) {
		t.Fatalf("expected latest interval to end 28 days after start, got %s", FormatISODate(intervals[0].EndDate))
	}
	for i := 0; i+1 < len(intervals); i++ {
		newer := intervals[i]
		older := intervals[i+1]
		if !older.StartDate.Before(newer.StartDate) {
			t.Fatalf("expected strictly descending starts at %d: %s then %s", i, FormatISODate(newer.StartDate), FormatISODate(older.StartDate))
		}
		if !older.EndDate.Equal(AddDays(newer.StartDate, -1)) {
			t.Fatalf("expected interval %d to end the day before %s, got %s", i+1, FormatISODate(newer.StartDate), FormatISODate(older.EndDate))
		}
		if older.EndDate.Before(older.StartDate) {
			t.Fatalf("expected end >= start for interval %d", i+1)
		}
	}
}

func TestWithAddedRecomputesNeighbours(t *testing.T) {
	current := parseDays("2024-01-01", "2024-02-01")
	got := WithAdded(current, mustParseDay("2024-03-01"))
	assertIntervals(t, got, [][2]string{
		{"2024-03-01", "2024-03-29"},
		{"2024-02-01", "2024-02-29"},
		{"2024-01-01", "2024-01-31"},
	})
}

func TestWithAddedDoesNotMutateInput(t *testing.T) {
	current := parseDays("2024-02-01", "2024-01-01")
	_ = WithAdded(current, mustParseDay("2024-03-01"))
	if len(current) != 2 || FormatISODate(current[0]) != "2024-02-01" {
		t.Fatalf("expected input slice untouched, got %v", current)
	}
}

func TestWithReplaced(t *testing.T) {
	got := WithReplaced(parseDays("2024-01-01"), mustParseDay("2024-01-01"), mustParseDay("2024-01-05"))
	assertIntervals(t, got, [][2]string{{"2024-01-05", "2024-02-02"}})
}

func TestWithReplacedMissingOldDateBehavesAsAdd(t *testing.T) {
	current := parseDays("2024-01-01")
	got := WithReplaced(current, mustParseDay("2023-06-01"), mustParseDay("2024-02-01"))
	want := WithAdded(current, mustParseDay("2024-02-01"))
	assertSameIntervals(t, got, want)
}

func TestWithReplacedMatchesIgnoringTimeOfDay(t *testing.T) {
	current := []time.Time{time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)}
	got := WithReplaced(current, mustParseDay("2024-01-01"), mustParseDay("2024-01-05"))
	assertIntervals(t, got, [][2]string{{"2024-01-05", "2024-02-02"}})
}

func TestWithRemoved(t *testing.T) {
	current := parseDays("2024-01-01", "2024-02-01", "2024-03-01")
	got := WithRemoved(current, mustParseDay("2024-02-01"))
	assertIntervals(t, got, [][2]string{
		{"2024-03-01", "2024-03-29"},
		{"2024-01-01", "2024-02-29"},
	})
}

func TestWithRemovedMissingDateIsNoop(t *testing.T) {
	current := parseDays("2024-01-01", "2024-02-01")
	assertSameIntervals(t, WithRemoved(current, mustParseDay("2024-05-05")), Reconcile(current))
}

func TestWithRemovedLastDateEmptiesTimeline(t *testing.T) {
	got := WithRemoved(parseDays("2024-01-01"), mustParseDay("2024-01-01"))
	if len(got) != 0 {
		t.Fatalf("expected empty timeline, got %d intervals", len(got))
	}
	if _, ok := PredictNextStart(got); ok {
		t.Fatal("expected no prediction for empty timeline")
	}
}

func parseDays(values ...string) []time.Time {
	days := make([]time.Time, 0, len(values))
	for _, value := range values {
		days = append(days, mustParseDay(value))
	}
	return days
}

func assertIntervals(t *testing.T, got []CycleInterval, want [][2]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d (%v)", len(want), len(got), got)
	}
	for i, interval := range got {
		if FormatISODate(interval.StartDate) != want[i][0] || FormatISODate(interval.EndDate) != want[i][1] {
			t.Fatalf("interval %d: expected %s..%s, got %s..%s", i, want[i][0], want[i][1], FormatISODate(interval.StartDate), FormatISODate(interval.EndDate))
		}
	}
}

func assertSameIntervals(t *testing.T, got []CycleInterval, want []CycleInterval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d", len(want), len(got))
	}
	for i := range got {
		if !got[i].StartDate.Equal(want[i].StartDate) || !got[i].EndDate.Equal(want[i].EndDate) {
			t.Fatalf("interval %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
