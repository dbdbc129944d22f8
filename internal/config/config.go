package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DataDir         string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	SessionSecret   string
	SessionDuration time.Duration

	// Secrets override channel: applied on top of the loaded documents at
	// startup, never written back to them.
	APIKey         string
	AdminPIN       string
	ChildName      string
	ChildAge       int
	ChildPronouns  string
	ChildInterests []string

	// Parent notifications (disabled when ParentEmail or FromEmail is empty)
	AWSRegion   string
	FromEmail   string
	ParentEmail string
}

// Load reads configuration from a .env file (if present) and environment
// variables with sensible defaults
func Load() *Config {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./littlestar.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionDuration: 12 * time.Hour,
		APIKey:          getEnv("OPENAI_API_KEY", ""),
		AdminPIN:        getEnv("ADMIN_PIN", ""),
		ChildName:       getEnv("CHILD_NAME", ""),
		ChildAge:        getEnvInt("CHILD_AGE", 0),
		ChildPronouns:   getEnv("CHILD_PRONOUNS", ""),
		ChildInterests:  splitList(getEnv("CHILD_INTERESTS", "")),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		FromEmail:       getEnv("SES_FROM_EMAIL", ""),
		ParentEmail:     getEnv("PARENT_EMAIL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// splitList parses a comma-separated value into trimmed entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
