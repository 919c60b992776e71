package db

import (
	"log"
	"os"

	"haven/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=haven port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.JournalEntry{},
		&models.ChatSession{},
		&models.ChatMessage{},
		&models.Resource{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed relaxation resources
	seedResources()
}

func seedResources() {
	var count int64
	DB.Model(&models.Resource{}).Count(&count)
	if count > 0 {
		log.Println("Resources already seeded, skipping")
		return
	}

	resources := []models.Resource{
		{
			Kind:        models.ResourceKindBreathing,
			Title:       "Box Breathing",
			Description: "Inhale, hold, exhale, hold - four counts each. A steady square to settle a racing mind.",
			DurationSec: 240,
		},
		{
			Kind:        models.ResourceKindBreathing,
			Title:       "4-7-8 Wind Down",
			Description: "Inhale for 4, hold for 7, exhale for 8. Slows the body down before sleep.",
			DurationSec: 180,
		},
		{
			Kind:        models.ResourceKindMeditation,
			Title:       "Five Senses Grounding",
			Description: "A short guided scan through what you can see, hear, touch, smell and taste.",
			MediaURL:    "audio/meditation/five-senses.mp3",
			DurationSec: 420,
		},
		{
			Kind:        models.ResourceKindMeditation,
			Title:       "Body Scan Before Bed",
			Description: "Release tension from head to toe with a slow guided body scan.",
			MediaURL:    "audio/meditation/body-scan.mp3",
			DurationSec: 600,
		},
		{
			Kind:        models.ResourceKindSoundscape,
			Title:       "Rain on a Tent",
			Description: "Soft rainfall for studying, resting, or drowning out a loud day.",
			MediaURL:    "audio/soundscape/rain-tent.mp3",
			DurationSec: 1800,
		},
		{
			Kind:        models.ResourceKindSoundscape,
			Title:       "Forest Morning",
			Description: "Birdsong and wind through leaves, recorded at dawn.",
			MediaURL:    "audio/soundscape/forest-morning.mp3",
			DurationSec: 1800,
		},
	}

	for _, res := range resources {
		if err := DB.Create(&res).Error; err != nil {
			log.Printf("Failed to create resource %s: %v", res.Title, err)
		}
	}
	log.Println("Initial relaxation resources created successfully")
}
