package main

import (
	"log"

	"election-service/internal/server"
)

func main() {
	application, err := server.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
