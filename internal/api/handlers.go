package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecart/internal/i18n"
	"github.com/terraincognita07/cyclecart/internal/models"
	"github.com/terraincognita07/cyclecart/internal/services"
)

type SubscriptionStore interface {
	FindReminderSubscription(ctx context.Context, userID string) (models.ReminderSubscription, bool, error)
	UpsertReminderSubscription(ctx context.Context, subscription *models.ReminderSubscription) error
	DeleteReminderSubscription(ctx context.Context, userID string) error
}

type Dependencies struct {
	Cycles        *services.CycleService
	Subscriptions SubscriptionStore
	I18n          *i18n.Manager
	SecretKey     string
	Location      *time.Location
	CookieSecure  bool
}

type Handler struct {
	cycles         *services.CycleService
	subscriptions  SubscriptionStore
	i18n           *i18n.Manager
	secretKey      []byte
	location       *time.Location
	cookieSecure   bool
	cookies        *secureCookieCodec
	sessionLimiter *attemptLimiter
	now            func() time.Time
}

type cycleDateInput struct {
	Date string `json:"date" form:"date"`
}

type subscriptionInput struct {
	TelegramChatID string `json:"telegram_chat_id" form:"telegram_chat_id"`
	Language       string `json:"language" form:"language"`
}

type reminderStatus struct {
	Due              bool   `json:"due"`
	NextPeriodDate   string `json:"nextPeriodDate,omitempty"`
	NotificationDate string `json:"notificationDate,omitempty"`
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Cycles == nil {
		return nil, errors.New("cycle service is required")
	}
	if deps.Subscriptions == nil {
		return nil, errors.New("subscription store is required")
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	secret := strings.TrimSpace(deps.SecretKey)
	if secret == "" {
		return nil, errors.New("secret key is required")
	}

	location := deps.Location
	if location == nil {
		location = deps.Cycles.Location()
	}

	cookies, err := newSecureCookieCodec([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &Handler{
		cycles:         deps.Cycles,
		subscriptions:  deps.Subscriptions,
		i18n:           deps.I18n,
		secretKey:      []byte(secret),
		location:       location,
		cookieSecure:   deps.CookieSecure,
		cookies:        cookies,
		sessionLimiter: newAttemptLimiter(sessionAttemptsLimit, sessionAttemptsWindow),
		now:            time.Now,
	}, nil
}
