package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL     string
	Addr            string
	AccessTokenKey  string
	RefreshTokenKey string
	AccessTokenAge  time.Duration
	AllowedOrigins  []string
	LogLevel        string
	LogFormat       string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	accessKey := os.Getenv("ACCESS_TOKEN_KEY")
	refreshKey := os.Getenv("REFRESH_TOKEN_KEY")
	if accessKey == "" || refreshKey == "" {
		return Config{}, errors.New("ACCESS_TOKEN_KEY and REFRESH_TOKEN_KEY env vars are required")
	}

	accessAge, err := parseAccessTokenAge(envOrDefault("ACCESS_TOKEN_AGE", "1800"))
	if err != nil {
		return Config{}, err
	}

	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "8080"))

	origins := parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	return Config{
		DatabaseURL:     dsn,
		Addr:            addr,
		AccessTokenKey:  accessKey,
		RefreshTokenKey: refreshKey,
		AccessTokenAge:  accessAge,
		AllowedOrigins:  origins,
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
	}, nil
}

func parseAccessTokenAge(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("ACCESS_TOKEN_AGE must be a positive number of seconds, got %q", raw)
	}
	return time.Duration(seconds) * time.Second, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
