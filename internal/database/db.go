package database

import (
	"log"

	"github.com/brightfold/studio-backend/internal/config"
	"github.com/brightfold/studio-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		// Surface unique-index violations as gorm.ErrDuplicatedKey so
		// the slug-collision retry can recognize them.
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	log.Println("Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.ContactSubmission{},
		&models.Review{},
		&models.CaseStudy{},
		&models.Article{},
		&models.Project{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Database migration completed")
}
