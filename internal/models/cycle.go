package models

import "time"

const (
	DefaultCycleLength = 28
	ReminderLeadDays   = 22
)

type CycleRecord struct {
	UserID           string  `gorm:"primaryKey"`
	CycleData        string  `gorm:"type:text;not null;default:'[]'"`
	NextPeriodDate   *string `gorm:"type:text"`
	NotificationDate *string `gorm:"type:text;index"`
	UpdatedAt        time.Time
}

func (CycleRecord) TableName() string {
	return "cycle_records"
}
