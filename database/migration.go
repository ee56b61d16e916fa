package database

import (
	"fmt"

	"basketball-league/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Team{},
		&models.Player{},
		&models.Game{},
		&models.LoginActivity{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
