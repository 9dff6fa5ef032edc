package models

import (
	"time"

	"github.com/opsight/opsight/pkg/database"
)

// Event is one observed ICS command/response with its process and protocol
// fields. Every field is required; the loader fills absent CSV columns with
// zero values rather than NULLs. (session_id, timestamp) is the event
// identity: replaying already-ingested data trips this constraint instead of
// silently duplicating rows.
type Event struct {
	EventID    int64     `gorm:"column:event_id;primaryKey;autoIncrement"`
	SessionID  int64     `gorm:"column:session_id;not null;uniqueIndex:uq_events_session_time,priority:1"`
	OperatorID string    `gorm:"column:operator_id;type:varchar(10);not null;index:ix_events_operator_time,priority:1"`
	Timestamp  time.Time `gorm:"column:timestamp;not null;uniqueIndex:uq_events_session_time,priority:2;index:ix_events_operator_time,priority:2"`

	TimeInterval        float64 `gorm:"column:time_interval;not null"`
	Address             string  `gorm:"column:address;type:varchar(50);not null;index:ix_events_address_fc,priority:1"`
	FunctionCode        string  `gorm:"column:function_code;type:varchar(10);not null;index:ix_events_address_fc,priority:2"`
	CommandResponse     string  `gorm:"column:command_response;type:varchar(50);not null"`
	ControlMode         string  `gorm:"column:control_mode;type:varchar(50);not null"`
	ControlScheme       string  `gorm:"column:control_scheme;type:varchar(100);not null"`
	CRC                 int64   `gorm:"column:crc;not null"`
	DataLength          int64   `gorm:"column:data_length;not null"`
	InvalidFunctionCode string  `gorm:"column:invalid_function_code;type:varchar(5);not null"`
	InvalidDataLength   string  `gorm:"column:invalid_data_length;type:varchar(5);not null"`
	PumpState           string  `gorm:"column:pump_state;type:varchar(50);not null"`
	SolenoidState       string  `gorm:"column:solenoid_state;type:varchar(50);not null"`
	SetPoint            float64 `gorm:"column:set_point;not null"`
	PipelinePSI         float64 `gorm:"column:pipeline_psi;not null"`
	PIDCycleTime        float64 `gorm:"column:pid_cycle_time;not null"`
	PIDDeadband         float64 `gorm:"column:pid_deadband;not null"`
	PIDGain             float64 `gorm:"column:pid_gain;not null"`
	PIDRate             float64 `gorm:"column:pid_rate;not null"`
	PIDReset            float64 `gorm:"column:pid_reset;not null"`
	DeltaSetPoint       float64 `gorm:"column:delta_set_point;not null"`
	DeltaPipelinePSI    float64 `gorm:"column:delta_pipeline_psi;not null"`
	DeltaPIDCycleTime   float64 `gorm:"column:delta_pid_cycle_time;not null"`
	DeltaPIDDeadband    float64 `gorm:"column:delta_pid_deadband;not null"`
	DeltaPIDGain        float64 `gorm:"column:delta_pid_gain;not null"`
	DeltaPIDRate        float64 `gorm:"column:delta_pid_rate;not null"`
	DeltaPIDReset       float64 `gorm:"column:delta_pid_reset;not null"`
	Label               string  `gorm:"column:label;type:varchar(50);not null"`

	Operator *Operator `gorm:"foreignKey:OperatorID;references:OperatorID"`

	Detections []Detection `gorm:"foreignKey:EventID;references:EventID;constraint:OnDelete:CASCADE"`
	Alerts     []Alert     `gorm:"foreignKey:EventID;references:EventID;constraint:OnDelete:CASCADE"`
}

func (Event) TableName() string {
	return database.EventsTableName
}
