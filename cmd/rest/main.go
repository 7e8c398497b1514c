package main

import (
	"context"
	"log"

	"legal-assistant-be/internal/bootstrap"
	"legal-assistant-be/internal/config"
	"legal-assistant-be/internal/server"
	"legal-assistant-be/internal/tracer"
	"legal-assistant-be/pkg/database"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	// Startup is fatal if redis is down; the vector store may still be
	// warming up, the first query will tell.
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap container: %v", err)
	}
	defer container.Logger.Sync()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
