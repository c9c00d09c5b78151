package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/cyclecart/internal/models"
)

type CycleInterval struct {
	StartDate time.Time
	EndDate   time.Time
}

func Reconcile(startDates []time.Time) []CycleInterval {
	starts := uniqueStartDays(startDates)
	sort.Slice(starts, func(i, j int) bool {
		return starts[i].After(starts[j])
	})

	intervals := make([]CycleInterval, 0, len(starts))
	for index, start := range starts {
		end := AddDays(start, models.DefaultCycleLength)
		if index > 0 {
			end = AddDays(starts[index-1], -1)
		}
		intervals = append(intervals, CycleInterval{
			StartDate: start,
			EndDate:   end,
		})
	}
	return intervals
}

func WithAdded(current []time.Time, newDate time.Time) []CycleInterval {
	next := make([]time.Time, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, newDate)
	return Reconcile(next)
}

func WithReplaced(current []time.Time, oldDate time.Time, newDate time.Time) []CycleInterval {
	next := removeDay(current, oldDate)
	next = append(next, newDate)
	return Reconcile(next)
}

func WithRemoved(current []time.Time, date time.Time) []CycleInterval {
	return Reconcile(removeDay(current, date))
}

func StartDates(intervals []CycleInterval) []time.Time {
	starts := make([]time.Time, 0, len(intervals))
	for _, interval := range intervals {
		starts = append(starts, interval.StartDate)
	}
	return starts
}

func uniqueStartDays(dates []time.Time) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	unique := make([]time.Time, 0, len(dates))
	for _, date := range dates {
		if date.IsZero() {
			continue
		}
		day := DateOnly(date)
		key := dayKey(day)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, day)
	}
	return unique
}

func removeDay(dates []time.Time, target time.Time) []time.Time {
	filtered := make([]time.Time, 0, len(dates)+1)
	for _, date := range dates {
		if IsSameDay(date, target) {
			continue
		}
		filtered = append(filtered, date)
	}
	return filtered
}
