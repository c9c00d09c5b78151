package db

import "gorm.io/gorm"

type Repositories struct {
	CycleRecords          *CycleRecordRepository
	ReminderSubscriptions *ReminderSubscriptionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		CycleRecords:          NewCycleRecordRepository(database),
		ReminderSubscriptions: NewReminderSubscriptionRepository(database),
	}
}
