package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port string
	Env  string

	MongoURI     string
	DatabaseName string

	SessionSecret string
	SessionTTL    time.Duration

	Provider string

	AssemblyAIKey     string
	AssemblyAIBaseURL string
	PollInterval      time.Duration
	MaxPollAttempts   int

	CORSOrigins []string

	ExportEnabled  bool
	ExportSchedule string
	ExportDir      string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("APP_ENV", "development"),
		MongoURI:          os.Getenv("MONGO_URI"),
		DatabaseName:      getEnv("MONGO_DB_NAME", "prepwise"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		Provider:          getEnv("AI_PROVIDER", "gemini"),
		AssemblyAIKey:     os.Getenv("ASSEMBLYAI_API_KEY"),
		AssemblyAIBaseURL: getEnv("ASSEMBLYAI_BASE_URL", "https://api.assemblyai.com"),
		PollInterval:      getEnvDuration("TRANSCRIPT_POLL_INTERVAL", 2*time.Second),
		MaxPollAttempts:   getEnvInt("TRANSCRIPT_MAX_POLLS", 60),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		ExportEnabled:     getEnv("FEEDBACK_EXPORT_ENABLED", "false") == "true",
		ExportSchedule:    getEnv("FEEDBACK_EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir:         getEnv("FEEDBACK_EXPORT_DIR", "./exports"),
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.MongoURI == "" {
		return errors.New("MONGO_URI environment variable is required")
	}
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET environment variable is required")
	}
	if cfg.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + cfg.Provider + ". Currently supported: gemini")
	}
	// Gemini validation is handled by gemini.NewConfig()
	return nil
}

// IsProduction gates the Secure flag on the session cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
