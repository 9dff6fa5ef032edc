package models

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/opsight/opsight/pkg/database"
)

// Migrate creates every table, foreign key, unique constraint and index from
// the entity definitions in one call. Parents are migrated before children so
// the foreign-key constraints can be created in the same pass.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Crew{},
		&ShiftDefinition{},
		&Operator{},
		&CrewRotation{},
		&ShiftInstance{},
		&Session{},
		&Event{},
		&SessionFeatures{},
		&BaselineProfile{},
		&Detection{},
		&Alert{},
		&CtiObject{},
		&AlertCtiLink{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func durationHours(h int) *int {
	return &h
}

// SeedShiftDefinitions inserts the two canonical shift definitions the
// loader's shift-label mapping points at. Re-running is a no-op: existing rows
// are left untouched.
func SeedShiftDefinitions(db *gorm.DB) error {
	shifts := []ShiftDefinition{
		{ShiftID: database.DayShiftID, ShiftName: "DAY", StartTime: "06:00", EndTime: "18:00", DurationHours: durationHours(12)},
		{ShiftID: database.NightShiftID, ShiftName: "NIGHT", StartTime: "18:00", EndTime: "06:00", DurationHours: durationHours(12)},
	}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&shifts).Error
	if err != nil {
		return fmt.Errorf("failed to seed shift definitions: %w", err)
	}
	return nil
}
