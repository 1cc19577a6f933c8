package inits

import (
	"campus-connect/app/server/models"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(conn string) (db *gorm.DB, err error) {
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// No seed data: user records are provisioned by the first successful
// sign-in (upsert keyed by email).
func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LostItem{},
		&models.DonorRecord{},
	)
}
