package dao

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database/models"
)

type EventDao struct {
	tx *gorm.DB
}

func NewEventDao(tx *gorm.DB) *EventDao {
	return &EventDao{tx: tx}
}

// BulkInsert writes the given events in batched multi-row statements. There
// is no upsert path: re-inserting rows that already exist trips the
// (session_id, timestamp) uniqueness and the error is surfaced to the caller.
func (dao *EventDao) BulkInsert(events []models.Event, batchSize int) error {
	if len(events) == 0 {
		return nil
	}
	if err := dao.tx.CreateInBatches(events, batchSize).Error; err != nil {
		return fmt.Errorf("failed to bulk insert events: %w", err)
	}
	return nil
}

func (dao *EventDao) CountBySession(sessionID int64) (int64, error) {
	var count int64
	err := dao.tx.Model(&models.Event{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count events of session %d: %w", sessionID, err)
	}
	return count, nil
}
