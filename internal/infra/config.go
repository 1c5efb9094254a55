package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	DBMaxConns        int
	DBMinConns        int
	DBConnLifetime    time.Duration
	DBConnIdleTime    time.Duration
	GeminiAPIKey      string
	GeminiModel       string
	GeminiBaseURL     string
	TTSBaseURL        string
	TTSAPIKey         string
	RenderCallbackURL string
	LLMRepairTimeout  time.Duration
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBMaxConns:        getEnvInt("DB_MAX_CONNS", 10),
		DBMinConns:        getEnvInt("DB_MIN_CONNS", 1),
		DBConnLifetime:    time.Minute * time.Duration(getEnvInt("DB_CONN_LIFETIME_MINUTES", 60)),
		DBConnIdleTime:    time.Minute * time.Duration(getEnvInt("DB_CONN_IDLE_MINUTES", 30)),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		TTSBaseURL:        os.Getenv("TTS_BASE_URL"),
		TTSAPIKey:         os.Getenv("TTS_API_KEY"),
		RenderCallbackURL: getEnv("RENDER_CALLBACK_URL", "http://localhost:8080/v1/render/callback"),
		LLMRepairTimeout:  time.Second * time.Duration(getEnvInt("LLM_REPAIR_TIMEOUT_SECONDS", 10)),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
