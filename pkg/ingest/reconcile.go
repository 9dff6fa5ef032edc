package ingest

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database"
	"github.com/opsight/opsight/pkg/database/dao"
	"github.com/opsight/opsight/pkg/database/models"
)

// reconcile guarantees that every (operator, session) pair referenced by the
// batch exists before the batch's event rows are inserted. It is idempotent:
// operators and sessions already in the store are left untouched, only the
// missing ones are added.
func reconcile(db *gorm.DB, rows []EventRow) error {
	if err := ensureOperators(db, rows); err != nil {
		return err
	}
	return ensureSessions(db, rows)
}

// ensureOperators creates an operator row (default rank) for every identifier
// in the batch that is not already present, in a single bulk insert.
func ensureOperators(db *gorm.DB, rows []EventRow) error {
	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Event.OperatorID]; ok {
			continue
		}
		seen[row.Event.OperatorID] = struct{}{}
		ids = append(ids, row.Event.OperatorID)
	}

	operatorDao := dao.NewOperatorDao(db)
	existing, err := operatorDao.ExistingIDs(ids)
	if err != nil {
		return err
	}

	missing := make([]models.Operator, 0, len(ids))
	for _, id := range ids {
		if _, ok := existing[id]; ok {
			continue
		}
		missing = append(missing, models.Operator{
			OperatorID:   id,
			OperatorRank: true,
		})
	}
	return operatorDao.BulkInsert(missing)
}

// sessionAgg accumulates one derived session while scanning the batch.
type sessionAgg struct {
	operatorID string
	shift      string
	start      time.Time
	end        time.Time
}

// ensureSessions derives one session per session identifier in the batch —
// operator and shift from the first occurrence, start/end from the min/max
// timestamp — and bulk-inserts the ones not already in the store. A shift
// label outside the fixed mapping fails the whole run.
func ensureSessions(db *gorm.DB, rows []EventRow) error {
	groups := make(map[int64]*sessionAgg, len(rows))
	order := make([]int64, 0, len(rows))
	for _, row := range rows {
		agg, ok := groups[row.Event.SessionID]
		if !ok {
			groups[row.Event.SessionID] = &sessionAgg{
				operatorID: row.Event.OperatorID,
				shift:      row.Shift,
				start:      row.Event.Timestamp,
				end:        row.Event.Timestamp,
			}
			order = append(order, row.Event.SessionID)
			continue
		}
		if row.Event.Timestamp.Before(agg.start) {
			agg.start = row.Event.Timestamp
		}
		if row.Event.Timestamp.After(agg.end) {
			agg.end = row.Event.Timestamp
		}
	}

	// the whole batch is validated before anything is inserted
	var badLabels []string
	badSeen := make(map[string]struct{})
	for _, sessionID := range order {
		label := strings.ToUpper(strings.TrimSpace(groups[sessionID].shift))
		if _, ok := shiftMap[label]; !ok {
			if _, dup := badSeen[groups[sessionID].shift]; !dup {
				badSeen[groups[sessionID].shift] = struct{}{}
				badLabels = append(badLabels, groups[sessionID].shift)
			}
		}
	}
	if len(badLabels) > 0 {
		return &ShiftMappingError{Labels: badLabels}
	}

	sessionDao := dao.NewSessionDao(db)
	existing, err := sessionDao.ExistingIDs(order)
	if err != nil {
		return err
	}

	missing := make([]models.Session, 0, len(order))
	for _, sessionID := range order {
		if _, ok := existing[sessionID]; ok {
			continue
		}
		agg := groups[sessionID]
		end := agg.end
		missing = append(missing, models.Session{
			SessionID:              sessionID,
			OperatorID:             agg.operatorID,
			ShiftID:                shiftMap[strings.ToUpper(strings.TrimSpace(agg.shift))],
			SessionStart:           agg.start,
			SessionEnd:             &end,
			InactivityThresholdMin: database.DefaultInactivityThresholdMin,
		})
	}
	return sessionDao.BulkInsert(missing)
}
