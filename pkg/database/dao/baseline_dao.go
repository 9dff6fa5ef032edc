package dao

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database/models"
)

type BaselineDao struct {
	tx *gorm.DB
}

func NewBaselineDao(tx *gorm.DB) *BaselineDao {
	return &BaselineDao{tx: tx}
}

// Create stores a trained baseline. The (operator, shift, version) uniqueness
// is enforced by the store; retraining publishes under a new version.
func (dao *BaselineDao) Create(baseline *models.BaselineProfile) error {
	if err := dao.tx.Create(baseline).Error; err != nil {
		return fmt.Errorf("failed to create baseline profile: %w", err)
	}
	return nil
}

func (dao *BaselineDao) GetByVersion(operatorID string, shiftID *int64, version string) (*models.BaselineProfile, error) {
	baseline := &models.BaselineProfile{}
	query := dao.tx.Where("operator_id = ? AND baseline_version = ?", operatorID, version)
	if shiftID != nil {
		query = query.Where("shift_id = ?", *shiftID)
	} else {
		query = query.Where("shift_id IS NULL")
	}
	if err := query.First(baseline).Error; err != nil {
		return nil, fmt.Errorf("failed to get baseline %s/%s: %w", operatorID, version, err)
	}
	return baseline, nil
}

type DetectionDao struct {
	tx *gorm.DB
}

func NewDetectionDao(tx *gorm.DB) *DetectionDao {
	return &DetectionDao{tx: tx}
}

// Create stores one verdict. A second verdict for the same
// (event, baseline, model) triple fails with the store's uniqueness error.
func (dao *DetectionDao) Create(detection *models.Detection) error {
	if err := dao.tx.Create(detection).Error; err != nil {
		return fmt.Errorf("failed to create detection: %w", err)
	}
	return nil
}

func (dao *DetectionDao) ListByEvent(eventID int64) ([]models.Detection, error) {
	var detections []models.Detection
	err := dao.tx.Where("event_id = ?", eventID).
		Order("detection_time").
		Find(&detections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list detections of event %d: %w", eventID, err)
	}
	return detections, nil
}
