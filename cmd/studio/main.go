package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floorplan-studio/internal/common/config"
	"floorplan-studio/internal/common/metrics"
	"floorplan-studio/internal/common/middleware"
	"floorplan-studio/internal/planner/generator"
	"floorplan-studio/internal/planner/handlers"
	"floorplan-studio/internal/planner/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Floor Plan Studio
// ============================================================

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	gen := generator.NewSimulated(cfg.GenerationDelay)
	sessions := service.NewSessionManager(ctx, gen, m)

	if cfg.SessionIdleTTL > 0 {
		go sessions.RunSweeper(ctx, time.Minute, cfg.SessionIdleTTL)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Floor Plan Studio",
		ErrorHandler: handlers.ErrorHandler,
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSAllowOrigins))

	// ============================================================
	// Routes
	// ============================================================

	handlers.Register(app, sessions, m)

	// ============================================================
	// Graceful Shutdown
	// ============================================================

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, shutting down...", sig)
		cancel()
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Floor Plan Studio on %s (env: %s, generation delay: %s)", addr, cfg.Environment, cfg.GenerationDelay)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
