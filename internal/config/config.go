// Package config provides configuration for the stylist backend.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Upstream model
	GroqAPIKey       string
	LLMBaseURL       string
	LLMModel         string
	LLMTimeout       time.Duration
	LLMRetryAttempts int
	LLMRetryDelay    time.Duration
	LLMRPS           float64
	// MaxImages caps the images forwarded upstream. Zero forwards all.
	MaxImages        int

	// WebSocket settings
	PingInterval   time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64

	// Logging
	Debug bool
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment variables
// take precedence over it.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:         getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:      getEnv("DATABASE_URL", "file:neuralthreads.db?cache=shared&mode=rwc"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		LLMBaseURL:       getEnv("LLM_BASE_URL", "https://api.groq.com/openai"),
		LLMModel:         getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
		LLMTimeout:       time.Duration(getEnvInt("LLM_TIMEOUT_MS", 60000)) * time.Millisecond,
		LLMRetryAttempts: getEnvInt("LLM_RETRY_ATTEMPTS", 3),
		LLMRetryDelay:    time.Duration(getEnvInt("LLM_RETRY_BASE_DELAY_MS", 1000)) * time.Millisecond,
		LLMRPS:           getEnvFloat("LLM_RPS", 5),
		MaxImages:        getEnvInt("STYLIST_MAX_IMAGES", 0),
		PingInterval:     time.Duration(getEnvInt("WS_PING_INTERVAL_MS", 30000)) * time.Millisecond,
		ReadTimeout:      time.Duration(getEnvInt("WS_READ_TIMEOUT_MS", 60000)) * time.Millisecond,
		WriteTimeout:     time.Duration(getEnvInt("WS_WRITE_TIMEOUT_MS", 10000)) * time.Millisecond,
		MaxMessageSize:   int64(getEnvInt("WS_MAX_MESSAGE_SIZE", 16<<20)),
		Debug:            getEnvBool("LOG_DEBUG", false),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return defaultVal
}
