package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/cyclecart/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReminderSubscriptionRepository struct {
	database *gorm.DB
}

func NewReminderSubscriptionRepository(database *gorm.DB) *ReminderSubscriptionRepository {
	return &ReminderSubscriptionRepository{database: database}
}

func (repo *ReminderSubscriptionRepository) FindReminderSubscription(ctx context.Context, userID string) (models.ReminderSubscription, bool, error) {
	var subscription models.ReminderSubscription
	err := repo.database.WithContext(ctx).Where("user_id = ?", userID).First(&subscription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ReminderSubscription{}, false, nil
	}
	if err != nil {
		return models.ReminderSubscription{}, false, err
	}
	return subscription, true, nil
}

func (repo *ReminderSubscriptionRepository) UpsertReminderSubscription(ctx context.Context, subscription *models.ReminderSubscription) error {
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"telegram_chat_id", "language", "updated_at"}),
	}).Create(subscription).Error
}

func (repo *ReminderSubscriptionRepository) DeleteReminderSubscription(ctx context.Context, userID string) error {
	return repo.database.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.ReminderSubscription{}).Error
}
