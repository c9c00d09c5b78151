package db

import (
	"context"
	"errors"

	"github.com/terraincognita07/cyclecart/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CycleRecordRepository struct {
	database *gorm.DB
}

func NewCycleRecordRepository(database *gorm.DB) *CycleRecordRepository {
	return &CycleRecordRepository{database: database}
}

func (repo *CycleRecordRepository) LoadCycleRecord(ctx context.Context, userID string) (models.CycleRecord, bool, error) {
	var record models.CycleRecord
	err := repo.database.WithContext(ctx).Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CycleRecord{}, false, nil
	}
	if err != nil {
		return models.CycleRecord{}, false, err
	}
	return record, true, nil
}

// SaveCycleRecord replaces the whole record. Concurrent writers for the same
// user are resolved last-write-wins.
func (repo *CycleRecordRepository) SaveCycleRecord(ctx context.Context, record *models.CycleRecord) error {
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cycle_data", "next_period_date", "notification_date", "updated_at"}),
	}).Create(record).Error
}

func (repo *CycleRecordRepository) ListCycleRecordsDueOn(ctx context.Context, isoDate string) ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0)
	if err := repo.database.WithContext(ctx).
		Where("notification_date = ?", isoDate).
		Order("user_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *CycleRecordRepository) DeleteCycleRecord(ctx context.Context, userID string) error {
	return repo.database.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CycleRecord{}).Error
}
