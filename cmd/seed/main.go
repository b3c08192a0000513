package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

const seedClient = "demo-client"

func main() {
	log.Println("🚀 Seeding demo projects...")

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

	projects := []entities.Project{
		{Name: "Goodwill", Aliases: "GW, goodwill-portal", EstimatedValue: 120000, ActualCost: 45000, ProfitMargin: 0.35, TimelineHealth: entities.TimelineOnTrack, Priority: "high"},
		{Name: "Harbor Logistics", Aliases: "harbor", EstimatedValue: 80000, ActualCost: 70000, ProfitMargin: 0.12, TimelineHealth: entities.TimelineAtRisk, Priority: "medium"},
		{Name: "Northwind Migration", EstimatedValue: 30000, ActualCost: 31000, ProfitMargin: -0.03, TimelineHealth: entities.TimelineOverdue, Priority: "low"},
	}
	statuses := []string{"done", "done", "in_progress", "todo"}

	log.Println("🗑️  Cleaning up existing demo data...")
	if err := db.Where("project_id IN (SELECT id FROM projects WHERE client_id = ?)", seedClient).Delete(&entities.Task{}).Error; err != nil {
		log.Printf("❌ Failed to clean up demo tasks: %v", err)
		return
	}
	if err := db.Where("client_id = ?", seedClient).Delete(&entities.Project{}).Error; err != nil {
		log.Printf("❌ Failed to clean up demo projects: %v", err)
		return
	}

	for _, p := range projects {
		p.ID = uuid.NewString()
		p.ClientID = seedClient
		p.Status = entities.ProjectStatusActive

		if err := db.Create(&p).Error; err != nil {
			log.Printf("❌ Failed to create project %s: %v", p.Name, err)
			continue
		}

		for i, status := range statuses {
			task := entities.Task{
				ID:             uuid.NewString(),
				ProjectID:      p.ID,
				Title:          fmt.Sprintf("%s task %d", p.Name, i+1),
				Status:         status,
				EstimatedHours: 8,
				ActualHours:    float64(4 * i),
			}
			if err := db.Create(&task).Error; err != nil {
				log.Printf("❌ Failed to create task for %s: %v", p.Name, err)
			}
		}

		fmt.Printf("🟢 %-22s %s\n", p.Name, p.ID)
	}

	log.Println("✅ Demo projects created")
	log.Printf("🧹 To clean up, run: DELETE FROM projects WHERE client_id = '%s'", seedClient)
}
