package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs at startup. It is built once
// in main and handed to the services explicitly; nothing reads it lazily.
type Config struct {
	GeminiAPIKey string
	DatabaseURL  string
	HTTPPort     string
	LogLevel     string
	DataFile     string

	// LLMTimeout bounds every embedding/generation call.
	LLMTimeout time.Duration

	// HistoryWindow is the max number of messages serialized into a prompt.
	HistoryWindow int

	// RetrievalK is how many knowledge chunks are stuffed into the context.
	RetrievalK int

	// JournalCandidateCap bounds the broad journal query (see store.QueryJournalEntries).
	JournalCandidateCap int
}

func Load() (*Config, error) {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		DatabaseURL:         getEnv("DATABASE_URL", "sahay.db"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		DataFile:            getEnv("DATA_FILE", "data.md"),
		LLMTimeout:          getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
		HistoryWindow:       getEnvAsInt("HISTORY_WINDOW", 10),
		RetrievalK:          getEnvAsInt("RETRIEVAL_K", 3),
		JournalCandidateCap: getEnvAsInt("JOURNAL_CANDIDATE_CAP", 100),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
