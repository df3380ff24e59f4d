package main

import (
	"fmt"
	"log"
	"os"

	"budget-impact/internal/api"
	"budget-impact/internal/api/handlers"
	"budget-impact/internal/config"
	"budget-impact/internal/runs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Optional server-wide defaults; requests overlay on top.
	defaults := &config.Config{}
	if path := os.Getenv("BIM_CONFIG"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load BIM_CONFIG %s: %v", path, err)
		}
		defaults = cfg
		log.Printf("Loaded defaults from %s (country=%q scenario=%q)", path, cfg.Country, cfg.Scenario)
	}
	if _, err := defaults.Inputs(); err != nil {
		log.Fatalf("Invalid default inputs: %v", err)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cache := runs.FromEnv()
	defer cache.Close()

	router := api.NewRouter(&handlers.Env{Defaults: defaults, Cache: cache})

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
