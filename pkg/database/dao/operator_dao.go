package dao

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database/models"
)

type OperatorDao struct {
	tx *gorm.DB
}

func NewOperatorDao(tx *gorm.DB) *OperatorDao {
	return &OperatorDao{tx: tx}
}

// ExistingIDs returns the subset of the given operator identifiers that are
// already present in the store.
func (dao *OperatorDao) ExistingIDs(ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	var found []string
	err := dao.tx.Model(&models.Operator{}).
		Where("operator_id IN ?", ids).
		Pluck("operator_id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query existing operators: %w", err)
	}

	for _, id := range found {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// BulkInsert creates the given operators in one statement.
func (dao *OperatorDao) BulkInsert(operators []models.Operator) error {
	if len(operators) == 0 {
		return nil
	}
	if err := dao.tx.Create(&operators).Error; err != nil {
		return fmt.Errorf("failed to bulk insert operators: %w", err)
	}
	return nil
}

func (dao *OperatorDao) Get(id string) (*models.Operator, error) {
	operator := &models.Operator{}
	err := dao.tx.First(operator, "operator_id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get operator %s: %w", id, err)
	}
	return operator, nil
}
