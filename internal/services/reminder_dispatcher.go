package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/terraincognita07/cyclecart/internal/logger"
	"github.com/terraincognita07/cyclecart/internal/models"
)

const DefaultReminderSchedule = "0 8 * * *"

type ReminderRecordSource interface {
	ListCycleRecordsDueOn(ctx context.Context, isoDate string) ([]models.CycleRecord, error)
}

type ReminderSubscriptionSource interface {
	FindReminderSubscription(ctx context.Context, userID string) (models.ReminderSubscription, bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, chatID string, message string) error
}

type ReminderTranslator interface {
	Translate(language string, key string) string
	Translatef(language string, key string, args ...any) string
}

type DispatchResult struct {
	Due     int
	Sent    int
	Skipped int
	Failed  int
}

type ReminderDispatcher struct {
	records       ReminderRecordSource
	subscriptions ReminderSubscriptionSource
	notifier      Notifier
	messages      ReminderTranslator
	location      *time.Location
	shopURL       string
	now           func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewReminderDispatcher(records ReminderRecordSource, subscriptions ReminderSubscriptionSource, notifier Notifier, messages ReminderTranslator, location *time.Location) *ReminderDispatcher {
	if location == nil {
		location = time.Local
	}
	return &ReminderDispatcher{
		records:       records,
		subscriptions: subscriptions,
		notifier:      notifier,
		messages:      messages,
		location:      location,
		now:           time.Now,
		sent:          make(map[string]time.Time),
	}
}

func (dispatcher *ReminderDispatcher) WithShopURL(shopURL string) *ReminderDispatcher {
	dispatcher.shopURL = strings.TrimSpace(shopURL)
	return dispatcher
}

func (dispatcher *ReminderDispatcher) Start(ctx context.Context, schedule string) error {
	if strings.TrimSpace(schedule) == "" {
		schedule = DefaultReminderSchedule
	}

	scheduler := cron.New(cron.WithLocation(dispatcher.location))
	if _, err := scheduler.AddFunc(schedule, func() {
		dispatcher.runScheduled(ctx)
	}); err != nil {
		return fmt.Errorf("schedule reminders %q: %w", schedule, err)
	}
	scheduler.Start()

	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}()
	return nil
}

func (dispatcher *ReminderDispatcher) runScheduled(ctx context.Context) {
	runID := uuid.NewString()
	result, err := dispatcher.RunOnce(ctx, dispatcher.now())
	if err != nil {
		logger.Error("reminder run failed", "run", runID, "err", err)
		return
	}
	logger.Info("reminder run finished", "run", runID, "due", result.Due, "sent", result.Sent, "skipped", result.Skipped, "failed", result.Failed)
}

func (dispatcher *ReminderDispatcher) RunOnce(ctx context.Context, now time.Time) (DispatchResult, error) {
	today := DateAtLocation(now, dispatcher.location)
	todayKey := FormatISODate(today)

	records, err := dispatcher.records.ListCycleRecordsDueOn(ctx, todayKey)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("list due records: %w", err)
	}

	result := DispatchResult{Due: len(records)}
	for _, record := range records {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		// The stored notification date is only an index; the prediction is
		// derived again from the intervals.
		starts, _ := DecodeCycleStartDates(record.CycleData, dispatcher.location)
		prediction := PredictTimeline(Reconcile(starts))
		if prediction == nil || !IsReminderDueToday(prediction.ReminderDate, today) {
			logger.Warn("stale notification date", "user", record.UserID, "date", todayKey)
			result.Skipped++
			continue
		}

		subscription, found, err := dispatcher.subscriptions.FindReminderSubscription(ctx, record.UserID)
		if err != nil {
			logger.Error("load reminder subscription failed", "user", record.UserID, "err", err)
			result.Failed++
			continue
		}
		if !found || strings.TrimSpace(subscription.TelegramChatID) == "" {
			result.Skipped++
			continue
		}

		key := fmt.Sprintf("period:%s:%s", record.UserID, todayKey)
		if !dispatcher.shouldSend(key, today) {
			result.Skipped++
			continue
		}

		message := dispatcher.composeMessage(subscription.Language, prediction.NextStartDate)
		if err := dispatcher.notifier.Notify(ctx, subscription.TelegramChatID, message); err != nil {
			logger.Error("send period reminder failed", "user", record.UserID, "err", err)
			dispatcher.forget(key)
			result.Failed++
			continue
		}
		result.Sent++
	}

	return result, nil
}

func (dispatcher *ReminderDispatcher) composeMessage(language string, nextStart time.Time) string {
	layout := dispatcher.messages.Translate(language, "date.layout")
	if layout == "date.layout" {
		layout = "Jan 2, 2006"
	}

	lines := []string{
		dispatcher.messages.Translate(language, "reminder.period_soon.title"),
		dispatcher.messages.Translatef(language, "reminder.period_soon.body", nextStart.Format(layout)),
	}
	if dispatcher.shopURL != "" {
		lines = append(lines, dispatcher.messages.Translatef(language, "reminder.period_soon.cta", dispatcher.shopURL))
	}
	return strings.Join(lines, "\n")
}

func (dispatcher *ReminderDispatcher) shouldSend(key string, today time.Time) bool {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	if sentOn, ok := dispatcher.sent[key]; ok && IsSameDay(sentOn, today) {
		return false
	}

	dispatcher.sent[key] = today
	if len(dispatcher.sent) > 500 {
		for sentKey, sentOn := range dispatcher.sent {
			if !IsSameDay(sentOn, today) {
				delete(dispatcher.sent, sentKey)
			}
		}
	}
	return true
}

func (dispatcher *ReminderDispatcher) forget(key string) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	delete(dispatcher.sent, key)
}
