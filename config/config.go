package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	LogLevel          string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Matching
	MatchResultLimit    int
	MaxPreferencesPerHR int
	DefaultMinAge       int
	// Realtime projection (redis mirror + pub/sub)
	RealtimeKeyPrefix string
	RealtimeTimeout   time.Duration
	MetricsEnabled    bool
}

func LoadConfig() (*Config, error) {
	// Load .env file; missing in production is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Strip trailing slash so joined paths don't end up as .co//auth
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		LogLevel:          getEnv("LOG_LEVEL", "debug"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Matching
		MatchResultLimit:    getEnvInt("MATCH_RESULT_LIMIT", 20),
		MaxPreferencesPerHR: getEnvInt("MAX_PREFERENCES_PER_HR", 5),
		DefaultMinAge:       getEnvInt("DEFAULT_MIN_AGE", 19),
		// Realtime
		RealtimeKeyPrefix: getEnv("REALTIME_KEY_PREFIX", "tn:"),
		RealtimeTimeout:   time.Duration(getEnvInt("REALTIME_TIMEOUT_MS", 3000)) * time.Millisecond,
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Realtime projection disabled, rate limiting uses in-memory fallback.")
	}

	if cfg.MatchResultLimit <= 0 {
		cfg.MatchResultLimit = 20
	}
	if cfg.MaxPreferencesPerHR <= 0 {
		cfg.MaxPreferencesPerHR = 5
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
