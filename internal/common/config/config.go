package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port             string
	Environment      string
	ReadTimeout      int
	WriteTimeout     int
	GenerationDelay  time.Duration
	SessionIdleTTL   time.Duration
	CORSAllowOrigins []string
}

// Load загружает конфигурацию из переменных окружения (и .env, если он есть)
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] .env not loaded: %v", err)
	}

	return &Config{
		Port:             getEnv("PORT", "3000"),
		Environment:      getEnv("ENV", "development"),
		ReadTimeout:      getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:     getEnvAsInt("WRITE_TIMEOUT", 10),
		GenerationDelay:  time.Duration(getEnvAsInt("GENERATION_DELAY_MS", 2000)) * time.Millisecond,
		SessionIdleTTL:   time.Duration(getEnvAsInt("SESSION_IDLE_TTL", 60)) * time.Minute,
		CORSAllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
