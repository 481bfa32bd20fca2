package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Automation webhook (n8n workflow that answers chat messages and
	// manages the calendar).
	WebhookURL     string
	WebhookTimeout time.Duration

	// Website identity attached to every outbound webhook payload.
	WebsiteName   string
	WebsiteDomain string

	// Phone number quoted in user-facing failure messages.
	FallbackPhone string

	// Optional Redis transcript cache. Empty address keeps transcripts
	// in process memory.
	RedisAddr     string
	RedisPassword string

	CORSAllowedOrigins []string
	RateLimitPerSec    float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables. A .env file in the
// working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		WebhookURL:         getEnv("CHAT_WEBHOOK_URL", ""),
		WebhookTimeout:     getEnvAsDuration("CHAT_WEBHOOK_TIMEOUT", 60*time.Second),
		WebsiteName:        getEnv("WEBSITE_NAME", "Douglas Driveway Services"),
		WebsiteDomain:      getEnv("WEBSITE_DOMAIN", "douglasdrivewayservices.ca"),
		FallbackPhone:      getEnv("FALLBACK_PHONE", "(555) 123-4567"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
		RateLimitPerSec:    getEnvAsFloat("RATE_LIMIT_PER_SEC", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
