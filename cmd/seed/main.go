package main

import (
	"log"
	"os"

	"github.com/brightfold/studio-backend/internal/config"
	"github.com/brightfold/studio-backend/internal/database"
	"github.com/brightfold/studio-backend/internal/models"
	"github.com/brightfold/studio-backend/internal/utils"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	adminName := os.Getenv("ADMIN_NAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminName == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_NAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	var admin models.User
	result := database.DB.Where("email = ?", adminEmail).First(&admin)
	if result.Error == nil {
		log.Println("Admin user already exists:", admin.Email)
	} else {
		passwordHash, err := utils.HashPassword(adminPassword)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		admin = models.User{
			ID:           uuid.New(),
			Name:         adminName,
			Email:        adminEmail,
			PasswordHash: passwordHash,
			Role:         models.RoleAdmin,
		}
		if err := database.DB.Create(&admin).Error; err != nil {
			log.Fatal("Failed to create admin:", err)
		}
		log.Println("Admin user created:", admin.Email)
	}

	seedReviews()
}

// seedReviews inserts a couple of placeholder testimonials so a fresh
// environment renders a non-empty marketing page.
func seedReviews() {
	var count int64
	database.DB.Model(&models.Review{}).Count(&count)
	if count > 0 {
		log.Println("Reviews already seeded")
		return
	}

	reviews := []models.Review{
		{
			Quote:    "They shipped our MVP in six weeks and it held up under launch traffic.",
			Author:   "Jordan Avery",
			Role:     "CTO",
			Company:  "Northlake Labs",
			Rating:   5,
			Featured: true,
		},
		{
			Quote:     "Clear communication, no surprises, and the handoff docs were excellent.",
			Author:    "Sam Rios",
			Role:      "Head of Product",
			Company:   "Fielder",
			Rating:    5,
			SortOrder: 1,
		},
	}

	for i := range reviews {
		if err := database.DB.Create(&reviews[i]).Error; err != nil {
			log.Fatal("Failed to seed reviews:", err)
		}
	}
	log.Println("Seeded", len(reviews), "reviews")
}
