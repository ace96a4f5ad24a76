package main

import (
	"log"
	"log/slog"

	"election-service/configs"
	"election-service/internal/storage/postgres"
)

func main() {
	cfg := configs.Load()

	slog.Info("Starting database migration...")

	dsn := cfg.Postgres.URL
	if dsn == "" {
		dsn = postgres.DSNFromComponents(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DB)
	}

	db, err := postgres.NewConnection(dsn)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	slog.Info("Database connection established")

	if err := postgres.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	slog.Info("Database migration completed successfully!")
}
