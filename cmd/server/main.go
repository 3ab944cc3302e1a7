package main

import (
	"log"

	_ "github.com/ndsrf/wedding-sub002/docs"
	"github.com/ndsrf/wedding-sub002/internal/config"
	"github.com/ndsrf/wedding-sub002/internal/logging"
	"github.com/ndsrf/wedding-sub002/internal/server"
)

// @title           Wedding Planner API
// @version         1.0
// @description     API for managing weddings: guest seating, tables and checklists.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	if err := logging.Init(cfg.LogLevel, cfg.LogJSON); err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}
	defer logging.Sync()

	s, err := server.Init(cfg)
	if err != nil {
		logging.SLog.Fatalw("server initialization failed", "error", err)
	}

	s.Run()
}
