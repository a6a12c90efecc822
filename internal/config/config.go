package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	Port           int
	DBPath         string
	AllowedOrigins []string
	OTLPEndpoint   string
}

func Load() Config {
	// load .env if present (ok if missing in prod)
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)
	dbPath := getEnv("DB_PATH", "employees.db")
	origins := splitOrigins(getEnv("CORS_ORIGINS", "*"))
	otlp := getEnv("OTLP_ENDPOINT", "")

	return Config{
		Env:            env,
		Port:           port,
		DBPath:         dbPath,
		AllowedOrigins: origins,
		OTLPEndpoint:   otlp,
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}

	return origins
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}
