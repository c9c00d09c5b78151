package services

import (
	"testing"
	"time"
)

func TestPersistRequestRecordOmitsEmptyDates(t *testing.T) {
	record, err := PersistRequest{}.Record("customer-1")
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	if record.CycleData != "[]" {
		t.Fatalf("expected empty array, got %q", record.CycleData)
	}
	if record.NextPeriodDate != nil || record.NotificationDate != nil {
		t.Fatal("expected derived dates to stay nil")
	}
}

func TestPersistRequestRecordCopiesDates(t *testing.T) {
	request := BuildPersistencePayload(
		CycleTimeline{Intervals: Reconcile([]time.Time{mustParseDay("2024-02-01")})},
		PredictTimeline(Reconcile([]time.Time{mustParseDay("2024-02-01")})),
	)

	record, err := request.Record("customer-1")
	if err != nil {
		t.Fatalf("build record: %v", err)
	}
	if record.UserID != "customer-1" {
		t.Fatalf("expected user id customer-1, got %q", record.UserID)
	}
	if record.NextPeriodDate == nil || *record.NextPeriodDate != "2024-02-29" {
		t.Fatalf("unexpected next period date %v", record.NextPeriodDate)
	}
	if record.NotificationDate == nil || *record.NotificationDate != "2024-02-23" {
		t.Fatalf("unexpected notification date %v", record.NotificationDate)
	}
	want := `[{"startDate":"2024-02-01T00:00:00Z","endDate":"2024-02-29T00:00:00Z"}]`
	if record.CycleData != want {
		t.Fatalf("expected %s, got %s", want, record.CycleData)
	}
}

func TestDecodeCycleStartDatesAcceptsStoredLayouts(t *testing.T) {
	raw := `[
		{"startDate":"2024-03-01T00:00:00Z","endDate":"2024-03-29T00:00:00Z"},
		{"startDate":"2024-02-01T00:00:00.000Z"},
		{"startDate":"2024-01-01T08:30:00"},
		{"startDate":"2023-12-01"},
		{"startDate":""},
		{"startDate":42},
		"not an object"
	]`

	starts, dropped := DecodeCycleStartDates(raw, time.UTC)
	if dropped != 3 {
		t.Fatalf("expected 3 dropped entries, got %d", dropped)
	}

	want := []string{"2024-03-01", "2024-02-01", "2024-01-01", "2023-12-01"}
	if len(starts) != len(want) {
		t.Fatalf("expected %d starts, got %d", len(want), len(starts))
	}
	for index, start := range starts {
		if FormatISODate(start) != want[index] {
			t.Fatalf("start %d: expected %s, got %s", index, want[index], FormatISODate(start))
		}
		if start.Hour() != 0 || start.Minute() != 0 {
			t.Fatalf("start %d: expected midnight, got %s", index, start)
		}
	}
}

func TestDecodeCycleStartDatesEmptyInputs(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[]"} {
		starts, dropped := DecodeCycleStartDates(raw, time.UTC)
		if len(starts) != 0 || dropped != 0 {
			t.Fatalf("input %q: expected no starts and no drops, got %d / %d", raw, len(starts), dropped)
		}
	}

	starts, dropped := DecodeCycleStartDates("{broken", time.UTC)
	if len(starts) != 0 || dropped != 1 {
		t.Fatalf("expected unreadable blob to count as one drop, got %d / %d", len(starts), dropped)
	}
}
