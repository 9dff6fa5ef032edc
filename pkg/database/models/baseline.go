package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/opsight/opsight/pkg/database"
)

// BaselineProfile is a trained behavioral baseline for an operator, optionally
// scoped to a shift. The profile itself is an opaque blob produced by the
// training pipeline; only (operator, shift, version) identity matters here.
type BaselineProfile struct {
	BaselineID      int64          `gorm:"column:baseline_id;primaryKey;autoIncrement"`
	OperatorID      string         `gorm:"column:operator_id;type:varchar(10);not null;uniqueIndex:uq_baseline_operator_shift_version,priority:1;index:ix_baseline_operator_shift,priority:1"`
	ShiftID         *int64         `gorm:"column:shift_id;uniqueIndex:uq_baseline_operator_shift_version,priority:2;index:ix_baseline_operator_shift,priority:2"`
	BaselineVersion string         `gorm:"column:baseline_version;type:varchar(20);not null;uniqueIndex:uq_baseline_operator_shift_version,priority:3"`
	TrainedFrom     time.Time      `gorm:"column:trained_from;not null"`
	TrainedTo       time.Time      `gorm:"column:trained_to;not null"`
	ProfileJSON     datatypes.JSON `gorm:"column:profile_json;not null"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime:true"`

	Operator        *Operator        `gorm:"foreignKey:OperatorID;references:OperatorID"`
	ShiftDefinition *ShiftDefinition `gorm:"foreignKey:ShiftID;references:ShiftID"`
}

func (BaselineProfile) TableName() string {
	return database.BaselineProfilesTableName
}

// Detection is the verdict of scoring one event against one baseline under a
// given model. The (event, baseline, model) triple is unique: at most one
// verdict per model per event per baseline.
type Detection struct {
	DetectionID    int64          `gorm:"column:detection_id;primaryKey;autoIncrement"`
	EventID        int64          `gorm:"column:event_id;not null;uniqueIndex:uq_detection_event_baseline_model,priority:1;index:ix_detection_event_id"`
	BaselineID     int64          `gorm:"column:baseline_id;not null;uniqueIndex:uq_detection_event_baseline_model,priority:2;index:ix_detection_baseline_time,priority:1"`
	ModelType      string         `gorm:"column:model_type;type:varchar(30);not null;uniqueIndex:uq_detection_event_baseline_model,priority:3"`
	AnomalyScore   float64        `gorm:"column:anomaly_score;not null"`
	Threshold      float64        `gorm:"column:threshold;not null"`
	EvidenceJSON   datatypes.JSON `gorm:"column:evidence_json;not null"`
	PredictedLabel string         `gorm:"column:predicted_label;type:varchar(15);not null"`
	DetectionTime  time.Time      `gorm:"column:detection_time;autoCreateTime:true;index:ix_detection_baseline_time,priority:2"`

	BaselineProfile *BaselineProfile `gorm:"foreignKey:BaselineID;references:BaselineID"`

	Alerts []Alert `gorm:"foreignKey:DetectionID;references:DetectionID;constraint:OnDelete:CASCADE"`
}

func (Detection) TableName() string {
	return database.DetectionsTableName
}
