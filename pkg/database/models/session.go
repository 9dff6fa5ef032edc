package models

import (
	"time"

	"github.com/opsight/opsight/pkg/database"
)

// Session is one continuous window of operator activity, demarcated by the
// first and last observed event. SessionEnd stays nil while the session is
// ongoing. Deleting a session removes its events, its features row and its
// alerts through the native cascades declared below; the owning operator and
// shift definition are untouched.
type Session struct {
	SessionID       int64      `gorm:"column:session_id;primaryKey;autoIncrement"`
	ShiftInstanceID *int64     `gorm:"column:shift_instance_id"`
	OperatorID      string     `gorm:"column:operator_id;type:varchar(10);not null;index:ix_sessions_operator_start,priority:1"`
	ShiftID         int64      `gorm:"column:shift_id;not null;index:ix_sessions_shift_start,priority:1"`
	SessionStart    time.Time  `gorm:"column:session_start;not null;index:ix_sessions_operator_start,priority:2;index:ix_sessions_shift_start,priority:2"`
	SessionEnd      *time.Time `gorm:"column:session_end"`
	// InactivityThresholdMin is the idle gap (minutes) after which downstream
	// sessionization would have split the session.
	InactivityThresholdMin int       `gorm:"column:inactivity_threshold_min;not null"`
	CreatedAt              time.Time `gorm:"column:created_at;autoCreateTime:true"`

	Operator        *Operator        `gorm:"foreignKey:OperatorID;references:OperatorID"`
	ShiftDefinition *ShiftDefinition `gorm:"foreignKey:ShiftID;references:ShiftID"`
	ShiftInstance   *ShiftInstance   `gorm:"foreignKey:ShiftInstanceID;references:ShiftInstanceID"`

	Events   []Event          `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE"`
	Features *SessionFeatures `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE"`
	Alerts   []Alert          `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return database.SessionsTableName
}

// SessionFeatures holds the behavioral feature vector computed for exactly one
// session by the (out-of-scope) feature pipeline. The unique session_id column
// enforces the 1:1 relation.
type SessionFeatures struct {
	SessionFeaturesID int64     `gorm:"column:session_features_id;primaryKey;autoIncrement"`
	SessionID         int64     `gorm:"column:session_id;uniqueIndex;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime:true"`

	CommandFrequency          float64 `gorm:"column:command_frequency;not null"`
	InterCommandMean          float64 `gorm:"column:inter_command_mean;not null"`
	InterCommandStd           float64 `gorm:"column:inter_command_std;not null"`
	CommandBurstRate          float64 `gorm:"column:command_burst_rate;not null"`
	ControlModeChangeRate     float64 `gorm:"column:control_mode_change_rate;not null"`
	HighRiskCommandRatio      float64 `gorm:"column:high_risk_command_ratio;not null"`
	InvalidCommandRate        float64 `gorm:"column:invalid_command_rate;not null"`
	PumpStateChangeRate       float64 `gorm:"column:pump_state_change_rate;not null"`
	SetPointShockEventRate    float64 `gorm:"column:setpoint_shock_event_rate;not null"`
	PIDModificationRate       float64 `gorm:"column:pid_modification_rate;not null"`
	CommandEntropy            float64 `gorm:"column:command_entropy;not null"`
	ProcessCommandCorrelation float64 `gorm:"column:process_command_correlation;not null"`
}

func (SessionFeatures) TableName() string {
	return database.SessionFeaturesTableName
}
