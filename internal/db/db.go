package db

import (
	"staffing-backend/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open connects to MySQL and migrates the schema. TranslateError makes
// duplicate key violations surface as gorm.ErrDuplicatedKey, which the
// timeclock store relies on for its clock-in conflict check.
func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Staff{},
		&models.Position{},
		&models.Event{},
		&models.Shift{},
		&models.Applicant{},
		&models.TimeEntry{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
