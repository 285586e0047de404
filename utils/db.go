package utils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/models"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Migrate runs the schema migration for every model. Tests reuse it against
// an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Chapter{},
		&models.Lecture{},
		&models.PremiumFeatures{},
		&models.Handout{},
		&models.EducatorApplication{},
		&models.Payment{},
		&models.Enrollment{},
		&models.CourseProgress{},
		&models.CompletedLecture{},
		&models.Rating{},
		&models.CertificateRequest{},
		&models.Certificate{},
		&models.Wallet{},
		&models.WalletTransaction{},
	)
}
