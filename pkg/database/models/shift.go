package models

import (
	"time"

	"github.com/opsight/opsight/pkg/database"
)

// ShiftDefinition is a shift type (DAY/NIGHT) with its clock boundaries. The
// loader maps the CSV Shift label onto these rows, so initdb seeds the two
// canonical definitions with fixed ids.
type ShiftDefinition struct {
	ShiftID       int64     `gorm:"column:shift_id;primaryKey;autoIncrement"`
	ShiftName     string    `gorm:"column:shift_name;type:varchar(20)"`
	StartTime     string    `gorm:"column:start_time;type:varchar(8)"`
	EndTime       string    `gorm:"column:end_time;type:varchar(8)"`
	DurationHours *int      `gorm:"column:duration_hours"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime:true"`
}

func (ShiftDefinition) TableName() string {
	return database.ShiftDefinitionsTableName
}

// ShiftInstance is one concrete occurrence of a shift worked by a crew.
type ShiftInstance struct {
	ShiftInstanceID int64      `gorm:"column:shift_instance_id;primaryKey;autoIncrement"`
	CrewID          int64      `gorm:"column:crew_id;not null"`
	ShiftID         int64      `gorm:"column:shift_id;not null"`
	ShiftStart      *time.Time `gorm:"column:shift_start"`
	ShiftEnd        *time.Time `gorm:"column:shift_end"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime:true"`

	Crew            *Crew            `gorm:"foreignKey:CrewID;references:CrewID"`
	ShiftDefinition *ShiftDefinition `gorm:"foreignKey:ShiftID;references:ShiftID"`
}

func (ShiftInstance) TableName() string {
	return database.ShiftInstancesTableName
}
