package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecart/internal/logger"
	"github.com/terraincognita07/cyclecart/internal/models"
)

var ErrInvalidInput = errors.New("invalid input")

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cycle store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type CycleStore interface {
	LoadCycleRecord(ctx context.Context, userID string) (models.CycleRecord, bool, error)
	SaveCycleRecord(ctx context.Context, record *models.CycleRecord) error
}

type CycleTimeline struct {
	UserID    string
	Intervals []CycleInterval
}

func (timeline CycleTimeline) IsEmpty() bool {
	return len(timeline.Intervals) == 0
}

func (timeline CycleTimeline) StartDates() []time.Time {
	return StartDates(timeline.Intervals)
}

type CycleSnapshot struct {
	PersistRequest
	ReminderDueToday bool `json:"reminderDueToday"`
}

type CycleService struct {
	store    CycleStore
	location *time.Location
}

func NewCycleService(store CycleStore, location *time.Location) *CycleService {
	if location == nil {
		location = time.UTC
	}
	return &CycleService{
		store:    store,
		location: location,
	}
}

func (service *CycleService) Location() *time.Location {
	return service.location
}

func (service *CycleService) Load(ctx context.Context, userID string) (CycleTimeline, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return CycleTimeline{}, ErrInvalidInput
	}

	record, found, err := service.store.LoadCycleRecord(ctx, userID)
	if err != nil {
		return CycleTimeline{}, &PersistenceError{Op: "load", Err: err}
	}
	if !found {
		return CycleTimeline{UserID: userID, Intervals: []CycleInterval{}}, nil
	}

	starts, dropped := DecodeCycleStartDates(record.CycleData, service.location)
	if dropped > 0 {
		logger.Warn("dropped unreadable cycle entries", "user", userID, "dropped", dropped)
	}
	return CycleTimeline{UserID: userID, Intervals: Reconcile(starts)}, nil
}

func (service *CycleService) LogNewStart(timeline CycleTimeline, date time.Time) (CycleTimeline, *Prediction, error) {
	if date.IsZero() {
		return timeline, nil, ErrInvalidInput
	}
	intervals := WithAdded(timeline.StartDates(), service.normalize(date))
	return service.advance(timeline, intervals)
}

func (service *CycleService) EditStart(timeline CycleTimeline, oldDate time.Time, newDate time.Time) (CycleTimeline, *Prediction, error) {
	if oldDate.IsZero() || newDate.IsZero() {
		return timeline, nil, ErrInvalidInput
	}
	intervals := WithReplaced(timeline.StartDates(), service.normalize(oldDate), service.normalize(newDate))
	return service.advance(timeline, intervals)
}

func (service *CycleService) DeleteStart(timeline CycleTimeline, date time.Time) (CycleTimeline, *Prediction, error) {
	if date.IsZero() {
		return timeline, nil, ErrInvalidInput
	}
	intervals := WithRemoved(timeline.StartDates(), service.normalize(date))
	return service.advance(timeline, intervals)
}

func BuildPersistencePayload(timeline CycleTimeline, prediction *Prediction) PersistRequest {
	request := PersistRequest{CycleData: encodeCycleEntries(timeline.Intervals)}
	if prediction != nil {
		request.NextPeriodDate = FormatISODate(prediction.NextStartDate)
		request.NotificationDate = FormatISODate(prediction.ReminderDate)
	}
	return request
}

func (service *CycleService) LogNewStartAndSave(ctx context.Context, timeline CycleTimeline, date time.Time) (CycleTimeline, *Prediction, error) {
	next, prediction, err := service.LogNewStart(timeline, date)
	if err != nil {
		return timeline, nil, err
	}
	return service.commit(ctx, timeline, next, prediction)
}

func (service *CycleService) EditStartAndSave(ctx context.Context, timeline CycleTimeline, oldDate time.Time, newDate time.Time) (CycleTimeline, *Prediction, error) {
	next, prediction, err := service.EditStart(timeline, oldDate, newDate)
	if err != nil {
		return timeline, nil, err
	}
	return service.commit(ctx, timeline, next, prediction)
}

func (service *CycleService) DeleteStartAndSave(ctx context.Context, timeline CycleTimeline, date time.Time) (CycleTimeline, *Prediction, error) {
	next, prediction, err := service.DeleteStart(timeline, date)
	if err != nil {
		return timeline, nil, err
	}
	return service.commit(ctx, timeline, next, prediction)
}

func (service *CycleService) Snapshot(timeline CycleTimeline, today time.Time) CycleSnapshot {
	prediction := PredictTimeline(timeline.Intervals)
	snapshot := CycleSnapshot{PersistRequest: BuildPersistencePayload(timeline, prediction)}
	if prediction != nil {
		snapshot.ReminderDueToday = IsReminderDueToday(prediction.ReminderDate, DateAtLocation(today, service.location))
	}
	return snapshot
}

func (service *CycleService) advance(timeline CycleTimeline, intervals []CycleInterval) (CycleTimeline, *Prediction, error) {
	next := CycleTimeline{UserID: timeline.UserID, Intervals: intervals}
	return next, PredictTimeline(intervals), nil
}

// commit persists next and only then hands it back; on failure the caller
// keeps current.
func (service *CycleService) commit(ctx context.Context, current CycleTimeline, next CycleTimeline, prediction *Prediction) (CycleTimeline, *Prediction, error) {
	record, err := BuildPersistencePayload(next, prediction).Record(next.UserID)
	if err != nil {
		return current, nil, &PersistenceError{Op: "save", Err: err}
	}
	if err := service.store.SaveCycleRecord(ctx, &record); err != nil {
		return current, nil, &PersistenceError{Op: "save", Err: err}
	}

	logger.Debug("cycle timeline saved", "user", next.UserID, "intervals", len(next.Intervals), "next_period", record.NextPeriodDate != nil)
	return next, prediction, nil
}

func (service *CycleService) normalize(date time.Time) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, service.location)
}
