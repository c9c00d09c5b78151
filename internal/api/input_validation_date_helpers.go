package api

import (
	"time"

	"github.com/terraincognita07/cyclecart/internal/services"
)

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	return services.ParseISODate(raw, location)
}

func parseTodayQuery(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if raw == "" {
		return services.DateAtLocation(now, location), nil
	}
	return parseDayParam(raw, location)
}
