package dao

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database/models"
)

type AlertDao struct {
	tx *gorm.DB
}

func NewAlertDao(tx *gorm.DB) *AlertDao {
	return &AlertDao{tx: tx}
}

func (dao *AlertDao) Create(alert *models.Alert) error {
	if err := dao.tx.Create(alert).Error; err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// Delete removes the alert; its CTI links go with it via the cascade.
func (dao *AlertDao) Delete(id int64) error {
	err := dao.tx.Delete(&models.Alert{}, "alert_id = ?", id).Error
	if err != nil {
		return fmt.Errorf("failed to delete alert %d: %w", id, err)
	}
	return nil
}

// LinkCti correlates an alert with a threat-intel object. The composite
// primary key keeps the pair unique.
func (dao *AlertDao) LinkCti(alertID, ctiID int64, matchReason *string) error {
	link := &models.AlertCtiLink{
		AlertID:     alertID,
		CtiID:       ctiID,
		MatchReason: matchReason,
	}
	if err := dao.tx.Create(link).Error; err != nil {
		return fmt.Errorf("failed to link alert %d to cti %d: %w", alertID, ctiID, err)
	}
	return nil
}

func (dao *AlertDao) ListLinks(alertID int64) ([]models.AlertCtiLink, error) {
	var links []models.AlertCtiLink
	err := dao.tx.Where("alert_id = ?", alertID).Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cti links of alert %d: %w", alertID, err)
	}
	return links, nil
}

type CtiDao struct {
	tx *gorm.DB
}

func NewCtiDao(tx *gorm.DB) *CtiDao {
	return &CtiDao{tx: tx}
}

func (dao *CtiDao) Create(object *models.CtiObject) error {
	if err := dao.tx.Create(object).Error; err != nil {
		return fmt.Errorf("failed to create cti object: %w", err)
	}
	return nil
}

func (dao *CtiDao) Get(id int64) (*models.CtiObject, error) {
	object := &models.CtiObject{}
	if err := dao.tx.First(object, "cti_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get cti object %d: %w", id, err)
	}
	return object, nil
}
