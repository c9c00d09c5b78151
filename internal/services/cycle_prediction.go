package services

import (
	"time"

	"github.com/terraincognita07/cyclecart/internal/models"
)

type Prediction struct {
	NextStartDate time.Time
	ReminderDate  time.Time
}

func PredictNextStart(intervals []CycleInterval) (time.Time, bool) {
	if len(intervals) == 0 {
		return time.Time{}, false
	}
	return AddDays(intervals[0].StartDate, models.DefaultCycleLength), true
}

func ComputeReminderDate(latestStart time.Time) time.Time {
	return AddDays(latestStart, models.ReminderLeadDays)
}

func IsReminderDueToday(reminderDate time.Time, today time.Time) bool {
	return IsSameDay(today, reminderDate)
}

func PredictTimeline(intervals []CycleInterval) *Prediction {
	nextStart, ok := PredictNextStart(intervals)
	if !ok {
		return nil
	}
	return &Prediction{
		NextStartDate: nextStart,
		ReminderDate:  ComputeReminderDate(intervals[0].StartDate),
	}
}
