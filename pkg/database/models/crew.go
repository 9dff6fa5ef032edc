package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/opsight/opsight/pkg/database"
)

// Crew groups ICS operators for shift assignment (e.g. Crew1, Crew2).
type Crew struct {
	CrewID    int64     `gorm:"column:crew_id;primaryKey;autoIncrement"`
	CrewName  string    `gorm:"column:crew_name;type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:true"`
}

func (Crew) TableName() string {
	return database.CrewsTableName
}

// CrewRotation is the on/off rotation pattern of a crew, anchored at a date.
type CrewRotation struct {
	RotationID int64          `gorm:"column:rotation_id;primaryKey;autoIncrement"`
	CrewID     int64          `gorm:"column:crew_id;not null"`
	AnchorDate datatypes.Date `gorm:"column:anchor_date;not null"`
	OnDays     int            `gorm:"column:on_days;not null"`
	OffDays    int            `gorm:"column:off_days;not null"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime:true"`

	Crew *Crew `gorm:"foreignKey:CrewID;references:CrewID"`
}

func (CrewRotation) TableName() string {
	return database.CrewRotationsTableName
}
