package main

import (
	"context"
	"log"

	"github.com/nithinvarma411/concizee/internal/bootstrap"
	"github.com/nithinvarma411/concizee/internal/config"
	"github.com/nithinvarma411/concizee/internal/server"
	"github.com/nithinvarma411/concizee/internal/tracer"
	"github.com/nithinvarma411/concizee/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		container.ConsumerService.Consume(context.Background())
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
