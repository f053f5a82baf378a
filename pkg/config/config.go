package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	FirebaseProject    string
	FirebaseApiKey     string
	StorageBucket      string
	ServiceAccountPath string
	Environment        string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:     getEnv("FIREBASE_WEB_API_KEY", ""),
		StorageBucket:      getEnv("FIREBASE_STORAGE_BUCKET", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		Environment:        getEnv("ENVIRONMENT", "development"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
