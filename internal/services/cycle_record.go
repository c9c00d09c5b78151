package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecart/internal/models"
)

type CycleEntry struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type PersistRequest struct {
	CycleData        []CycleEntry `json:"cycleData"`
	NextPeriodDate   string       `json:"nextPeriodDate,omitempty"`
	NotificationDate string       `json:"notificationDate,omitempty"`
}

var storedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	isoDateLayout,
}

func encodeCycleEntries(intervals []CycleInterval) []CycleEntry {
	entries := make([]CycleEntry, 0, len(intervals))
	for _, interval := range intervals {
		entries = append(entries, CycleEntry{
			StartDate: interval.StartDate.Format(time.RFC3339),
			EndDate:   interval.EndDate.Format(time.RFC3339),
		})
	}
	return entries
}

func (request PersistRequest) Record(userID string) (models.CycleRecord, error) {
	entries := request.CycleData
	if entries == nil {
		entries = []CycleEntry{}
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return models.CycleRecord{}, fmt.Errorf("encode cycle data: %w", err)
	}

	record := models.CycleRecord{
		UserID:    userID,
		CycleData: string(encoded),
	}
	if request.NextPeriodDate != "" {
		next := request.NextPeriodDate
		record.NextPeriodDate = &next
	}
	if request.NotificationDate != "" {
		notification := request.NotificationDate
		record.NotificationDate = &notification
	}
	return record, nil
}

// Entries that fail to decode or parse are skipped and counted in dropped.
func DecodeCycleStartDates(raw string, location *time.Location) ([]time.Time, int) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []time.Time{}, 0
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return []time.Time{}, 1
	}

	starts := make([]time.Time, 0, len(items))
	dropped := 0
	for _, item := range items {
		var entry CycleEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			dropped++
			continue
		}
		start, err := parseStoredDate(entry.StartDate, location)
		if err != nil {
			dropped++
			continue
		}
		starts = append(starts, start)
	}
	return starts, dropped
}

func parseStoredDate(raw string, location *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if location == nil {
		location = time.UTC
	}
	for _, layout := range storedDateLayouts {
		parsed, err := time.ParseInLocation(layout, trimmed, location)
		if err == nil {
			return DateAtLocation(parsed, location), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", trimmed)
}
