package postgres

import (
	"fmt"

	"election-service/internal/ports/models"

	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.Election{},
		&models.Candidate{},
		&models.Voter{},
		&models.Vote{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}

	return nil
}
