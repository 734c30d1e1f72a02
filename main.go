package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prodea/cache"
	"prodea/config"
	"prodea/database"
	"prodea/server"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env before the config layer reads the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using process environment")
	}

	cfg := config.LoadConfig()

	// Connect to database and ensure the schema exists
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Redis backs the auth rate limiter; the API runs without it
	rdb := cache.Connect(cfg.RedisURL)
	defer cache.Close(rdb)

	srv := server.New(cfg, db, rdb)

	app := fiber.New(fiber.Config{
		AppName: "PRODEA API",
	})

	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
