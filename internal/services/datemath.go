package services

import (
	"errors"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

func AddDays(date time.Time, n int) time.Time {
	return DateOnly(date).AddDate(0, 0, n)
}

func IsSameDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func FormatISODate(date time.Time) string {
	return date.Format(isoDateLayout)
}

func ParseISODate(raw string, location *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errors.New("date is required")
	}
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(isoDateLayout, trimmed, location)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func dayKey(date time.Time) string {
	return FormatISODate(date)
}
