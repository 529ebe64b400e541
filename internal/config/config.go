package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	ImportAPIKey string // Shared secret for the importer surface
	ImportDBDSN  string // Postgres DSN for the importer store

	SyncSchedule    string // Cron spec for scheduled full runs, empty disables
	ProgressTTL     int    // Seconds until a progress record expires
	SitePushTimeout int    // Seconds per outbound site push

	TranslateAPIURL string
	TranslateAPIKey string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "yacht-cms"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "yacht-cms"),

		ImportAPIKey: getEnv("IMPORT_API_KEY", ""),
		ImportDBDSN:  getEnv("IMPORT_DB_DSN", ""),

		SyncSchedule:    getEnv("SYNC_SCHEDULE", ""),
		ProgressTTL:     getEnvInt("PROGRESS_TTL_SECONDS", 600),
		SitePushTimeout: getEnvInt("SITE_PUSH_TIMEOUT_SECONDS", 300),

		TranslateAPIURL: getEnv("TRANSLATE_API_URL", ""),
		TranslateAPIKey: getEnv("TRANSLATE_API_KEY", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
