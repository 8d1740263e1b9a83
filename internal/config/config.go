package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application settings read from the environment
type Config struct {
	DatabaseURL     string
	DataPath        string
	Port            string
	GinMode         string
	JWTSecret       string
	APIMasterSecret string
	AdminUsername   string
	AdminPassword   string
	ScheduleOutput  string
	LogLevel        string
}

var envPaths = []string{".env", "../.env", "../../.env"}

// LoadDotEnv loads the first .env file found in the working directory or its parents
func LoadDotEnv() {
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads the configuration with defaults after loading any .env file
func Load() Config {
	LoadDotEnv()
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only
func FromEnv() Config {
	return Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataPath:        getEnv("DATA_PATH", "ewr.db"),
		Port:            getEnv("PORT", "8000"),
		GinMode:         os.Getenv("GIN_MODE"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIMasterSecret: os.Getenv("API_MASTER_SECRET"),
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin123"),
		ScheduleOutput:  getEnv("SCHEDULE_OUTPUT", "Schedule.txt"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate checks the settings that have no usable fallback
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q: must be debug, info, warn or error", c.LogLevel)
	}
	if strings.TrimSpace(c.ScheduleOutput) == "" {
		return errors.New("SCHEDULE_OUTPUT must not be empty")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}
