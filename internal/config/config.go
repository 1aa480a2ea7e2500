package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// AI API Keys
	OpenAIAPIKey string // OpenAI API key for menu content generation
	GeminiAPIKey string // Google Gemini API key for image generation/editing

	// Model selection
	ContentModel string // Model used for menu content generation
	ImageModel   string // Model used for menu/food image generation

	// Database (optional - menu archive only, sessions are in-memory)
	DatabaseURL string

	// Generated image storage
	AssetsDir string // Directory where generated images are written

	// Variant session behavior
	SessionTTL      time.Duration // How long finished sessions stay pollable
	SweepInterval   time.Duration // How often the store evicts expired sessions
	VariantDeadline time.Duration // Per-variant pipeline deadline

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		ContentModel:      getEnv("CONTENT_MODEL", "gpt-5-mini"),
		ImageModel:        getEnv("IMAGE_MODEL", "gemini-2.5-flash-image"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		AssetsDir:         getEnv("ASSETS_DIR", "./assets"),
		SessionTTL:        getDuration("SESSION_TTL", time.Hour),
		SweepInterval:     getDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		VariantDeadline:   getDuration("VARIANT_DEADLINE", 5*time.Minute),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Accept bare seconds for compatibility with older deploy scripts
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// HasDatabase returns true when the menu archive should be enabled
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
