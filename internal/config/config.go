package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	BackendURL    string
	DataDir       string
	EventTitle    string
	HonoreeNames  string
	EventDate     string
	EventLocation string
	ContactInfo   string
}

// LoadConfig loads configuration from a .env file (when present) and
// environment variables, falling back to defaults.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		BackendURL:    getEnv("BACKEND_URL", "http://localhost:8000"),
		DataDir:       getEnv("DATA_DIR", "data"),
		EventTitle:    getEnv("EVENT_TITLE", "Baby Shower"),
		HonoreeNames:  getEnv("HONOREE_NAMES", "Isadora & Isabelle"),
		EventDate:     getEnv("EVENT_DATE", "August 9, 2025"),
		EventLocation: getEnv("EVENT_LOCATION", "To be announced"),
		ContactInfo:   getEnv("CONTACT_INFO", "Daniel • (69) 99226-5294"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
