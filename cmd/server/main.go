package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/mietwert/backend/internal/delivery/http"
	"github.com/mietwert/backend/internal/domain"
	"github.com/mietwert/backend/internal/geo"
	"github.com/mietwert/backend/internal/model"
	"github.com/mietwert/backend/internal/repository/postgres"
	"github.com/mietwert/backend/internal/repository/rediscache"
	"github.com/mietwert/backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg := loadConfig()

	// Model artifact — required; there is nothing to serve without it
	estimator, err := model.LoadArtifact(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Could not load model artifact: %v", err)
	}
	log.Printf("Loaded model artifact from %s", cfg.ModelPath)

	// Geo reference table — optional; geo endpoints return 503 without it
	geoRef, err := geo.Load(cfg.GeoDataPath)
	if err != nil {
		log.Printf("Warning: %v", err)
		log.Println("Geo endpoints disabled, location warnings skipped")
		geoRef = nil
	} else {
		log.Printf("Loaded geo reference data from %s", cfg.GeoDataPath)
	}

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var repo domain.EstimateRepository
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, estimate logs kept in memory only")
		repo = postgres.NewMockRepository()
	} else if pool, err := pgxpool.New(ctx, cfg.DatabaseURL); err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Estimate logs kept in memory only")
		repo = postgres.NewMockRepository()
	} else {
		defer pool.Close()
		log.Println("Connected to PostgreSQL")
		repo = postgres.NewPostgresRepository(pool)
	}

	// Response cache
	var cache domain.EstimateCache
	if cfg.RedisAddr != "" {
		cache = rediscache.NewRedisCache(cfg.RedisAddr)
		log.Printf("Using Redis cache at %s", cfg.RedisAddr)
	} else {
		cache = rediscache.NewMockCache()
		log.Println("No REDIS_ADDR set, using in-memory cache")
	}

	// Dependency Injection: Services
	estimateSvc := service.NewEstimateService(
		estimator, geoRef, repo, cache,
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
	)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Mietwert API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, estimateSvc)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	estimateSvc.WaitBackground()
	log.Println("Server exited gracefully")
}

type Config struct {
	DatabaseURL     string
	RedisAddr       string
	ModelPath       string
	GeoDataPath     string
	CacheTTLSeconds int
	Port            string
	Env             string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		ModelPath:       getEnv("MODEL_PATH", "mietwert_model.json"),
		GeoDataPath:     getEnv("GEO_DATA_PATH", "geo_data.json"),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 3600),
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("GO_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
