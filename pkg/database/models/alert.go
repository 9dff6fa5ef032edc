package models

import (
	"time"

	"github.com/opsight/opsight/pkg/database"
)

// Alert is a raised security/operational alert tied to the event, session and
// detection that produced it. Deleting an alert cascades its CTI links.
type Alert struct {
	AlertID          int64     `gorm:"column:alert_id;primaryKey;autoIncrement"`
	EventID          int64     `gorm:"column:event_id;not null"`
	SessionID        int64     `gorm:"column:session_id;not null"`
	DetectionID      int64     `gorm:"column:detection_id;not null;index:ix_alerts_detection_id"`
	AlertTime        time.Time `gorm:"column:alert_time;autoCreateTime:true;index:ix_alerts_time_severity,priority:1"`
	Severity         int       `gorm:"column:severity;not null;index:ix_alerts_time_severity,priority:2"`
	AlertCategory    string    `gorm:"column:alert_category;type:varchar(30);not null"`
	AlertDescription string    `gorm:"column:alert_description;type:varchar(500);not null"`

	CtiLinks []AlertCtiLink `gorm:"foreignKey:AlertID;references:AlertID;constraint:OnDelete:CASCADE"`
}

func (Alert) TableName() string {
	return database.AlertsTableName
}

// CtiObject is a threat-intelligence artifact (TTP, IOC or rule) correlated to
// alerts through AlertCtiLink.
type CtiObject struct {
	CtiID      int64     `gorm:"column:cti_id;primaryKey;autoIncrement"`
	CtiType    string    `gorm:"column:cti_type;type:varchar(30);not null"`
	CtiName    string    `gorm:"column:cti_name;type:varchar(150);not null"`
	ExternalID *string   `gorm:"column:external_id;type:varchar(50)"`
	Rule       *string   `gorm:"column:rule;type:varchar(500)"`
	Confidence *int      `gorm:"column:confidence"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime:true"`

	AlertLinks []AlertCtiLink `gorm:"foreignKey:CtiID;references:CtiID"`
}

func (CtiObject) TableName() string {
	return database.CtiObjectsTableName
}

// AlertCtiLink is the many-to-many join between alerts and CTI objects, keyed
// by the two foreign keys together.
type AlertCtiLink struct {
	AlertID       int64     `gorm:"column:alert_id;primaryKey;autoIncrement:false"`
	CtiID         int64     `gorm:"column:cti_id;primaryKey;autoIncrement:false"`
	MatchReason   *string   `gorm:"column:match_reason;type:varchar(250)"`
	LinkCreatedAt time.Time `gorm:"column:link_created_at;autoCreateTime:true"`
}

func (AlertCtiLink) TableName() string {
	return database.AlertCtiLinksTableName
}
