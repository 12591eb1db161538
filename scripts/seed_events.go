package main

import (
	"log"

	"github.com/google/uuid"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/infrastructure/database"
	"github.com/eventscript-team/eventscript/pkg/config"
)

func main() {
	log.Println("🚀 Starting demo events creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	demos := []entities.Event{
		{ID: uuid.New(), Title: "Product Launch Webinar", EventType: "webinar", Status: entities.EventStatusDraft, DurationMinutes: 90},
		{ID: uuid.New(), Title: "Annual Tech Conference", EventType: "conference", Status: entities.EventStatusDraft, DurationMinutes: 240},
		{ID: uuid.New(), Title: "Go Workshop for Beginners", EventType: "workshop", Status: entities.EventStatusDraft, DurationMinutes: 180},
		{ID: uuid.New(), Title: "Quarterly All-Hands", EventType: "corporate", Status: entities.EventStatusDraft, DurationMinutes: 60},
	}

	for _, demo := range demos {
		if err := db.Create(&demo).Error; err != nil {
			log.Printf("⚠️ Failed to create %q: %v", demo.Title, err)
			continue
		}
		log.Printf("✅ Created event %q (%s)", demo.Title, demo.ID)
	}

	log.Println("✅ Done!")
}
