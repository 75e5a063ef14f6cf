package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prepgogo/backend/internal/ai"
	"prepgogo/backend/internal/api/handler"
	"prepgogo/backend/internal/api/middleware"
	"prepgogo/backend/internal/auth"
	"prepgogo/backend/internal/config"
	"prepgogo/backend/internal/interviewhub"
	"prepgogo/backend/internal/models"
	"prepgogo/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.PerformanceRecord{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting PrepGoGo Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	// 1. Dependencies
	db, rdb := setupDependencies(cfg)
	s := storage.NewService(db, rdb)

	// 2. Session coordinator and supporting services
	registry := interviewhub.NewRoomRegistry()
	hub := interviewhub.NewCoordinatorService(registry, s)
	hub.RecoverActiveRooms()
	reaper := interviewhub.NewReaper(registry, s, cfg.RoomGracePeriod, config.ReaperInterval)

	authSvc := auth.NewService(cfg.JWTSecret)

	var generator ai.Generator
	if cfg.GeminiAPIKey != "" {
		generator = ai.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		log.Println("Warning: GEMINI_API_KEY not set, question generation disabled")
	}

	// 3. Background goroutines
	go hub.Run()
	go hub.RunRelayListener(s.SubscribeEvents())
	go reaper.Run()

	// 4. Gin and routing
	r := gin.Default()
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	h := handler.NewHandler(hub, s, authSvc, generator)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/auth/token", h.GetToken)
	r.GET("/ws", h.ServeWebSocket)

	api := r.Group("/api", middleware.RateLimit(s, config.APIRateLimit, config.APIRateWindow))
	{
		api.GET("/questions/random", h.GetRandomQuestion)

		protected := api.Group("", middleware.RequireAuth(authSvc))
		{
			protected.GET("/questions/topic/:topic", h.GetQuestionsByTopic)
			protected.POST("/questions/generate", h.GenerateQuestion)
			protected.POST("/questions/:id/hint", h.GetHint)
			protected.GET("/questions/:id/solution", h.GetSolution)

			protected.POST("/performance", h.CreatePerformance)
			protected.GET("/performance", h.ListPerformance)
		}
	}

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()
	log.Printf("Listening on :%s", cfg.Port)

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	reaper.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped.")
}
