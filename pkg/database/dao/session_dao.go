package dao

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database/models"
)

type SessionDao struct {
	tx *gorm.DB
}

func NewSessionDao(tx *gorm.DB) *SessionDao {
	return &SessionDao{tx: tx}
}

// ExistingIDs returns the subset of the given session identifiers that are
// already present in the store.
func (dao *SessionDao) ExistingIDs(ids []int64) (map[int64]struct{}, error) {
	existing := make(map[int64]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	var found []int64
	err := dao.tx.Model(&models.Session{}).
		Where("session_id IN ?", ids).
		Pluck("session_id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query existing sessions: %w", err)
	}

	for _, id := range found {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// BulkInsert creates the given sessions in one statement. Session identifiers
// come from the ingested data, not from the sequence.
func (dao *SessionDao) BulkInsert(sessions []models.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	if err := dao.tx.Create(&sessions).Error; err != nil {
		return fmt.Errorf("failed to bulk insert sessions: %w", err)
	}
	return nil
}

func (dao *SessionDao) Get(id int64) (*models.Session, error) {
	session := &models.Session{}
	err := dao.tx.First(session, "session_id = ?", id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get session %d: %w", id, err)
	}
	return session, nil
}

// Delete removes the session row. The store's ON DELETE CASCADE constraints
// take its events, its features row and its alerts with it; the owning
// operator and shift definition stay.
func (dao *SessionDao) Delete(id int64) error {
	err := dao.tx.Delete(&models.Session{}, "session_id = ?", id).Error
	if err != nil {
		return fmt.Errorf("failed to delete session %d: %w", id, err)
	}
	return nil
}
