// Package config reads application configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	StoreBackend    string // sqlite, postgres, mysql or memory
	StorePath       string
	StoreURL        string
	StaticFilesPath string
	CacheVersion    string

	GateSecret string
	ParentPIN  string

	SESRegion     string
	SESFromEmail  string
	SESFromName   string
	ReportToEmail string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		StoreBackend:    getEnv("STORE_BACKEND", "sqlite"),
		StorePath:       getEnv("STORE_PATH", "./fractionsarcade.db"),
		StoreURL:        getEnv("STORE_URL", ""),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		CacheVersion:    getEnv("CACHE_VERSION", "v1"),
		GateSecret:      getEnv("GATE_SECRET", ""),
		ParentPIN:       getEnv("PARENT_PIN", ""),
		SESRegion:       getEnv("SES_REGION", "eu-west-1"),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESFromName:     getEnv("SES_FROM_NAME", "Fractions Arcade"),
		ReportToEmail:   getEnv("REPORT_TO_EMAIL", ""),
		Debug:           getBoolEnv("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv reads a boolean environment variable or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
