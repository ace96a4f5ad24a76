package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"election-service/configs"
	"election-service/internal/ports/models"
	"election-service/internal/storage/postgres"
)

// Seeds a demo election that is already running, with two presidential
// candidates. Writes go through the store directly: engine validation
// rejects elections that start in the past, which is exactly what a
// demo needs.
func main() {
	cfg := configs.Load()

	slog.Info("Starting database seeding...")

	dsn := cfg.Postgres.URL
	if dsn == "" {
		dsn = postgres.DSNFromComponents(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DB)
	}

	db, err := postgres.NewConnection(dsn)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	slog.Info("Database connection established")

	store := postgres.NewStore(db)
	ctx := context.Background()
	now := time.Now().Unix()

	election := &models.Election{
		Title:       "Student Union Election 2024",
		Description: "Annual election for Student Union Government positions",
		StartTime:   now - 3600,
		EndTime:     now + 86400,
		IsActive:    true,
	}
	if err := store.CreateElection(ctx, election); err != nil {
		log.Fatal("Failed to seed election:", err)
	}

	candidates := []*models.Candidate{
		{
			ElectionID: election.ID,
			Name:       "John Doe",
			Position:   "President",
			Manifesto:  "Building a better future for all students with transparency and innovation.",
			IsActive:   true,
		},
		{
			ElectionID: election.ID,
			Name:       "Jane Smith",
			Position:   "President",
			Manifesto:  "Empowering student voices and creating lasting positive change.",
			IsActive:   true,
		},
	}
	for _, candidate := range candidates {
		if err := store.AddCandidate(ctx, candidate); err != nil {
			log.Fatal("Failed to seed candidate:", err)
		}
	}

	slog.Info("Database seeding completed successfully!", "electionId", election.ID)
}
