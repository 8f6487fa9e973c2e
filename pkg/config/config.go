package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Discord bot
	DiscordToken   string
	DiscordGuildID string

	// Canvas
	CanvasBaseURL string
	CanvasToken   string

	// Google OAuth / APIs
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleTokenPath    string
	GoogleTasklistID   string
	GoogleCalendarID   string

	// Reconciliation
	SyncDBPath   string
	SyncInterval time.Duration

	// NL parsing
	AIProvider    string
	OpenAIAPIKey  string
	OpenAIModel   string
	OllamaBaseURL string
	OllamaModel   string
	UserTimezone  string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	syncInterval := 6 * time.Hour
	if iv := os.Getenv("SYNC_INTERVAL"); iv != "" {
		if parsed, err := time.ParseDuration(iv); err == nil {
			syncInterval = parsed
		}
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DiscordToken:       getEnv("DISCORD_TOKEN", ""),
		DiscordGuildID:     getEnv("DISCORD_GUILD_ID", ""),
		CanvasBaseURL:      getEnv("CANVAS_BASE_URL", ""),
		CanvasToken:        getEnv("CANVAS_TOKEN", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/auth/google/callback"),
		GoogleTokenPath:    getEnv("GOOGLE_TOKEN_PATH", "token.json"),
		GoogleTasklistID:   getEnv("GOOGLE_TASKLIST_ID", "@default"),
		GoogleCalendarID:   getEnv("GOOGLE_CALENDAR_ID", "primary"),
		SyncDBPath:         getEnv("SYNC_DB_PATH", "sync.db"),
		SyncInterval:       syncInterval,
		AIProvider:         getEnv("AI_PROVIDER", "auto"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:        getEnv("OLLAMA_MODEL", "llama3"),
		UserTimezone:       getEnv("USER_TIMEZONE", "America/Los_Angeles"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
