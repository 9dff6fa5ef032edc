package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/opsight/opsight/pkg/database/dao"
	"github.com/opsight/opsight/pkg/database/models"
	"github.com/opsight/opsight/test/pkg/testsqlite"
)

func TestMigrateCreatesAllTables(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	for _, table := range []string{
		"users", "crews", "shift_definitions", "operators", "crew_rotations",
		"shift_instances", "sessions", "events", "session_features",
		"baseline_profiles", "detections", "alerts", "cti_objects", "alert_cti_links",
	} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestSeedShiftDefinitionsIsIdempotent(t *testing.T) {
	db := testsqlite.NewTestDB(t)

	// NewTestDB already seeded once
	require.NoError(t, models.SeedShiftDefinitions(db))

	var count int64
	require.NoError(t, db.Model(&models.ShiftDefinition{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// seedDetectionGraph inserts one full operator→session→event→detection→alert
// chain with a linked CTI object and a features row, and returns the ids.
func seedDetectionGraph(t *testing.T, db *gorm.DB) (sessionID, eventID, alertID, ctiID int64) {
	t.Helper()
	start := time.Date(2015, 10, 3, 8, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.Operator{OperatorID: "OP1", OperatorRank: true}).Error)

	session := &models.Session{
		OperatorID:             "OP1",
		ShiftID:                1,
		SessionStart:           start,
		InactivityThresholdMin: 10,
	}
	require.NoError(t, db.Create(session).Error)

	event := &models.Event{
		SessionID:  session.SessionID,
		OperatorID: "OP1",
		Timestamp:  start,
		Address:    "pump-4",
		Label:      "Normal",
	}
	require.NoError(t, db.Create(event).Error)

	require.NoError(t, db.Create(&models.SessionFeatures{
		SessionID:        session.SessionID,
		CommandFrequency: 1.5,
	}).Error)

	dayShiftID := int64(1)
	baseline := &models.BaselineProfile{
		OperatorID:      "OP1",
		ShiftID:         &dayShiftID,
		BaselineVersion: "v1",
		TrainedFrom:     start.AddDate(0, -1, 0),
		TrainedTo:       start,
		ProfileJSON:     datatypes.JSON([]byte(`{"mean":1.5}`)),
	}
	require.NoError(t, db.Create(baseline).Error)

	detection := &models.Detection{
		EventID:        event.EventID,
		BaselineID:     baseline.BaselineID,
		ModelType:      "iforest",
		AnomalyScore:   0.91,
		Threshold:      0.8,
		EvidenceJSON:   datatypes.JSON([]byte(`{"score":0.91}`)),
		PredictedLabel: "anomalous",
	}
	require.NoError(t, db.Create(detection).Error)

	alert := &models.Alert{
		EventID:          event.EventID,
		SessionID:        session.SessionID,
		DetectionID:      detection.DetectionID,
		Severity:         3,
		AlertCategory:    "behavior",
		AlertDescription: "anomalous setpoint change",
	}
	require.NoError(t, db.Create(alert).Error)

	cti := &models.CtiObject{CtiType: "TTP", CtiName: "T0831 Manipulation of Control"}
	require.NoError(t, db.Create(cti).Error)
	require.NoError(t, dao.NewAlertDao(db).LinkCti(alert.AlertID, cti.CtiID, nil))

	return session.SessionID, event.EventID, alert.AlertID, cti.CtiID
}

func TestDeleteSessionCascades(t *testing.T) {
	db := testsqlite.NewTestDB(t)
	sessionID, _, _, ctiID := seedDetectionGraph(t, db)

	require.NoError(t, dao.NewSessionDao(db).Delete(sessionID))

	var events, features, alerts, links, detections int64
	assert.NoError(t, db.Model(&models.Event{}).Count(&events).Error)
	assert.NoError(t, db.Model(&models.SessionFeatures{}).Count(&features).Error)
	assert.NoError(t, db.Model(&models.Alert{}).Count(&alerts).Error)
	assert.NoError(t, db.Model(&models.AlertCtiLink{}).Count(&links).Error)
	assert.NoError(t, db.Model(&models.Detection{}).Count(&detections).Error)
	assert.Zero(t, events)
	assert.Zero(t, features)
	assert.Zero(t, alerts)
	assert.Zero(t, links)
	assert.Zero(t, detections)

	// parents of the session survive
	var operators int64
	assert.NoError(t, db.Model(&models.Operator{}).Count(&operators).Error)
	assert.Equal(t, int64(1), operators)
	assert.True(t, db.Migrator().HasTable("shift_definitions"))
	var shiftDefs int64
	assert.NoError(t, db.Model(&models.ShiftDefinition{}).Count(&shiftDefs).Error)
	assert.Equal(t, int64(2), shiftDefs)

	// CTI objects are shared intel and never cascade
	var ctis int64
	assert.NoError(t, db.Model(&models.CtiObject{}).Where("cti_id = ?", ctiID).Count(&ctis).Error)
	assert.Equal(t, int64(1), ctis)
}

func TestDeleteAlertCascadesCtiLinks(t *testing.T) {
	db := testsqlite.NewTestDB(t)
	_, _, alertID, ctiID := seedDetectionGraph(t, db)

	require.NoError(t, dao.NewAlertDao(db).Delete(alertID))

	var links int64
	assert.NoError(t, db.Model(&models.AlertCtiLink{}).Count(&links).Error)
	assert.Zero(t, links)

	var ctis int64
	assert.NoError(t, db.Model(&models.CtiObject{}).Where("cti_id = ?", ctiID).Count(&ctis).Error)
	assert.Equal(t, int64(1), ctis)
}

func TestDetectionTripleIsUnique(t *testing.T) {
	db := testsqlite.NewTestDB(t)
	_, eventID, _, _ := seedDetectionGraph(t, db)

	var existing models.Detection
	require.NoError(t, db.First(&existing, "event_id = ?", eventID).Error)

	duplicate := &models.Detection{
		EventID:        existing.EventID,
		BaselineID:     existing.BaselineID,
		ModelType:      existing.ModelType,
		AnomalyScore:   0.5,
		Threshold:      0.8,
		EvidenceJSON:   datatypes.JSON([]byte(`{}`)),
		PredictedLabel: "normal",
	}
	err := dao.NewDetectionDao(db).Create(duplicate)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// a different model type for the same event and baseline is fine
	other := &models.Detection{
		EventID:        existing.EventID,
		BaselineID:     existing.BaselineID,
		ModelType:      "ocsvm",
		AnomalyScore:   0.4,
		Threshold:      0.6,
		EvidenceJSON:   datatypes.JSON([]byte(`{}`)),
		PredictedLabel: "normal",
	}
	assert.NoError(t, dao.NewDetectionDao(db).Create(other))
}

func TestSessionFeaturesAreOneToOne(t *testing.T) {
	db := testsqlite.NewTestDB(t)
	sessionID, _, _, _ := seedDetectionGraph(t, db)

	err := db.Create(&models.SessionFeatures{SessionID: sessionID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestBaselineVersionIsUniquePerOperatorAndShift(t *testing.T) {
	db := testsqlite.NewTestDB(t)
	seedDetectionGraph(t, db)

	dayShiftID := int64(1)
	duplicate := &models.BaselineProfile{
		OperatorID:      "OP1",
		ShiftID:         &dayShiftID,
		BaselineVersion: "v1",
		TrainedFrom:     time.Now().AddDate(0, -1, 0),
		TrainedTo:       time.Now(),
		ProfileJSON:     datatypes.JSON([]byte(`{}`)),
	}
	err := dao.NewBaselineDao(db).Create(duplicate)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
