package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration
	BotToken string

	// OpenAI configuration
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Storage configuration
	DataDir string

	// Engine tunables. The defaults come from the matching and ranking
	// packages; they can be overridden per deployment.
	MatchThreshold       float64
	ExpiryWindowDays     int
	MaxSearchIngredients int
	SuggestionCount      int
	ReminderHour         int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{}

	// Required configurations
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	cfg.BotToken = botToken

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	cfg.OpenAIAPIKey = openAIAPIKey

	// Optional configurations with defaults
	cfg.OpenAIAPIBase = getEnvWithDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.DataDir = getEnvWithDefault("DATA_DIR", "./data")

	cfg.MatchThreshold, err = getEnvFloat("MATCH_THRESHOLD", 0.6)
	if err != nil {
		return nil, err
	}
	if cfg.MatchThreshold < 0 || cfg.MatchThreshold > 1 {
		return nil, fmt.Errorf("MATCH_THRESHOLD must be between 0 and 1, got %v", cfg.MatchThreshold)
	}

	cfg.ExpiryWindowDays, err = getEnvInt("EXPIRY_WINDOW_DAYS", 5)
	if err != nil {
		return nil, err
	}
	cfg.MaxSearchIngredients, err = getEnvInt("MAX_SEARCH_INGREDIENTS", 20)
	if err != nil {
		return nil, err
	}
	cfg.SuggestionCount, err = getEnvInt("SUGGESTION_COUNT", 5)
	if err != nil {
		return nil, err
	}
	cfg.ReminderHour, err = getEnvInt("REMINDER_HOUR", 9)
	if err != nil {
		return nil, err
	}

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	if len(logCfg.BotToken) > 8 {
		logCfg.BotToken = logCfg.BotToken[:8] + "...REDACTED..."
	}
	if len(logCfg.OpenAIAPIKey) > 8 {
		logCfg.OpenAIAPIKey = logCfg.OpenAIAPIKey[:8] + "...REDACTED..."
	}
	log.Printf("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// getEnvWithDefault returns the value of the environment variable or the
// default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}
