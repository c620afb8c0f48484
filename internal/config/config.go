package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server         ServerConfig
	BookingService BookingServiceConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type BookingServiceConfig struct {
	// Base URL of the external booking service that owns all
	// persistence and conflict handling.
	BaseURL string
	Timeout time.Duration
	// Delay before the post-submission re-fetch that reconciles the
	// optimistic update against the server.
	ResyncDelay time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		BookingService: BookingServiceConfig{
			BaseURL:     getEnv("BOOKING_SERVICE_URL", "http://localhost:3000"),
			Timeout:     time.Duration(getEnvInt("BOOKING_SERVICE_TIMEOUT_SECONDS", 10)) * time.Second,
			ResyncDelay: time.Duration(getEnvInt("BOOKING_RESYNC_DELAY_MS", 1500)) * time.Millisecond,
		},
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
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
