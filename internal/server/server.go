package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndsrf/wedding-sub002/internal/checklist"
	"github.com/ndsrf/wedding-sub002/internal/config"
	"github.com/ndsrf/wedding-sub002/internal/handler"
	"github.com/ndsrf/wedding-sub002/internal/logging"
	"github.com/ndsrf/wedding-sub002/internal/middleware"
	"github.com/ndsrf/wedding-sub002/internal/repository"
	"github.com/ndsrf/wedding-sub002/internal/seating"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	logging.SLog.Infow("connected to database", "host", cfg.DBHost, "db", cfg.DBName)

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	weddingRepo := repository.NewWeddingRepository(db)
	tableRepo := repository.NewTableRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	seatingRepo := repository.NewSeatingRepository(db)

	// Initialize services
	importService := checklist.NewService(checklistRepo)
	seatingService := seating.NewService(weddingRepo, tableRepo, familyRepo, seatingRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	weddingHandler := handler.NewWeddingHandler(weddingRepo)
	tableHandler := handler.NewTableHandler(tableRepo, weddingRepo)
	familyHandler := handler.NewFamilyHandler(familyRepo, weddingRepo)
	checklistHandler := handler.NewChecklistHandler(checklistRepo, weddingRepo)
	importHandler := handler.NewImportHandler(importService, checklistRepo, weddingRepo)
	seatingHandler := handler.NewSeatingHandler(seatingService, weddingRepo, tableRepo, familyRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Wedding routes
		authorized.POST("/weddings", weddingHandler.Create)
		authorized.GET("/weddings", weddingHandler.GetAll)
		authorized.GET("/weddings/:id", weddingHandler.GetByID)
		authorized.PUT("/weddings/:id", weddingHandler.Update)

		// Table routes
		authorized.POST("/weddings/:id/tables", tableHandler.Create)
		authorized.GET("/weddings/:id/tables", tableHandler.GetAll)
		authorized.PUT("/tables/:id", tableHandler.Update)
		authorized.DELETE("/tables/:id", tableHandler.Delete)

		// Family and guest routes
		authorized.POST("/weddings/:id/families", familyHandler.Create)
		authorized.GET("/weddings/:id/families", familyHandler.GetAll)
		authorized.GET("/weddings/:id/members", familyHandler.GetMembers)
		authorized.POST("/families/:id/members", familyHandler.CreateMember)
		authorized.PUT("/members/:id", familyHandler.UpdateMember)

		// Checklist routes
		authorized.GET("/weddings/:id/checklist", checklistHandler.GetChecklist)
		authorized.POST("/weddings/:id/sections", checklistHandler.CreateSection)
		authorized.DELETE("/sections/:id", checklistHandler.DeleteSection)
		authorized.POST("/weddings/:id/tasks", checklistHandler.CreateTask)
		authorized.PUT("/tasks/:id", checklistHandler.UpdateTask)
		authorized.DELETE("/tasks/:id", checklistHandler.DeleteTask)

		// Checklist import/export
		authorized.POST("/weddings/:id/checklist/import", importHandler.Import)
		authorized.GET("/weddings/:id/checklist/export", importHandler.Export)

		// Seating routes
		authorized.POST("/weddings/:id/seating/random", seatingHandler.AssignRandom)
		authorized.POST("/weddings/:id/seating/assignments", seatingHandler.AssignManual)
		authorized.GET("/weddings/:id/seating", seatingHandler.SeatingView)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		logging.SLog.Infow("server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.SLog.Fatalw("failed to listen", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.SLog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.SLog.Fatalw("server forced to shutdown", "error", err)
	}

	logging.SLog.Info("server exited properly")
}
