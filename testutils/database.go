package testutils

import (
	"backend_timesheet/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB создает и настраивает тестовую базу данных в памяти.
// Эта функция должна использоваться во всех тестах для обеспечения
// консистентности схемы.
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Employee{},
		&models.WorkActivity{},
		&models.PhoneConsultation{},
		&models.Timesheet{},
		&models.TimesheetEntry{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
