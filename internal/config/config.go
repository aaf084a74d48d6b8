package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	PostgresURL        string
	RedisURL           string
	OSMBaseURL         string
	DefaultLanguage    string
	IconVocabularyFile string
}

// Load reads the process environment, optionally seeded from a local .env
// file in development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		PostgresURL:        os.Getenv("POSTGRES_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		OSMBaseURL:         getEnv("OSM_BASE_URL", "https://www.openstreetmap.org"),
		DefaultLanguage:    getEnv("DEFAULT_LANGUAGE", "he"),
		IconVocabularyFile: os.Getenv("ICON_VOCABULARY_FILE"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
