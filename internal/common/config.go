package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Embedding EmbeddingConfig
	History   HistoryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
}

// LLMConfig holds chat-completion endpoint configuration. An empty APIKey
// selects the heuristic recommendation path.
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// EmbeddingConfig holds the optional local embedding model configuration.
// An empty BaseURL disables similarity-based score refinement.
type EmbeddingConfig struct {
	BaseURL string
	Model   string
}

// HistoryConfig holds the analysis history store configuration. An empty
// Path disables history.
type HistoryConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_API_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 500),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
		},
		Embedding: EmbeddingConfig{
			BaseURL: getEnv("OLLAMA_BASE_URL", ""),
			Model:   getEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text:latest"),
		},
		History: HistoryConfig{
			Path: getEnv("HISTORY_DB_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.LLM.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_URL is required", ErrInvalidInput)
	}
	if c.LLM.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "OPENAI_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}
