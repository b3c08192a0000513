package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 0, "maximum number of migrations to run (0 = all)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database using GORM
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	// Get the underlying SQL database connection from GORM
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	direction := migrate.Up
	if *down {
		direction = migrate.Down
	}

	log.Printf("🔄 Running embedded migrations (down=%v, steps=%d)...", *down, *steps)
	n, err := migrate.ExecMax(sqlDB, "postgres", database.MigrationSource(), direction, *steps)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Printf("✅ Successfully ran %d migration(s)!\n", n)
}
