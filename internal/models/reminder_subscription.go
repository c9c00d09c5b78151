package models

import "time"

type ReminderSubscription struct {
	UserID         string `gorm:"primaryKey"`
	TelegramChatID string `gorm:"not null"`
	Language       string `gorm:"not null;default:en"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ReminderSubscription) TableName() string {
	return "reminder_subscriptions"
}
