package models

import (
	"time"

	"github.com/opsight/opsight/pkg/database"
)

// Operator is an ICS operator. The primary key is the externally assigned
// operator identifier carried by every ingested event row; it is never
// generated by the store.
type Operator struct {
	OperatorID     string    `gorm:"column:operator_id;type:varchar(10);primaryKey"`
	CrewID         *int64    `gorm:"column:crew_id"`
	DefaultShiftID *int64    `gorm:"column:default_shift_id"`
	OperatorRank   bool      `gorm:"column:operator_rank;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime:true"`

	Crew         *Crew            `gorm:"foreignKey:CrewID;references:CrewID"`
	DefaultShift *ShiftDefinition `gorm:"foreignKey:DefaultShiftID;references:ShiftID"`
}

func (Operator) TableName() string {
	return database.OperatorsTableName
}
