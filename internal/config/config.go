package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// Session tokens
	TokenTTL    = 72 * time.Hour
	TokenIssuer = "prepgogo-service"

	// REST rate limiting (per client IP)
	APIRateLimit  = 100
	APIRateWindow = 15 * time.Minute

	// Rooms whose last member left are kept around this long before the
	// reaper deletes them. A rejoin inside the window keeps the document.
	DefaultRoomGracePeriod = 60 * time.Second
	ReaperInterval         = 15 * time.Second
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port           string
	PostgresDSN    string
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string
	FrontendOrigin string

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	RoomGracePeriod time.Duration
}

// Load reads the configuration from environment variables, falling back to
// development defaults. Callers are expected to have run godotenv first.
func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "dev-only-secret"),
		FrontendOrigin: getEnv("FRONTEND_URL", "http://localhost:5173"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		RoomGracePeriod: DefaultRoomGracePeriod,
	}

	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "user"),
			getEnv("DB_PASSWORD", "password"),
			getEnv("DB_NAME", "prepgogodb"),
			getEnv("DB_PORT", "5432"),
		)
	}

	if d, err := time.ParseDuration(os.Getenv("ROOM_GRACE_PERIOD")); err == nil && d > 0 {
		cfg.RoomGracePeriod = d
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
