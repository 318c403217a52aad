package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// AI provider (OpenAI-compatible chat completions)
	AIAPIKey      string
	AIAPIURL      string
	AIModel       string
	AISearchModel string
	AITimeout     time.Duration

	// File hosting provider
	FileHostURL        string
	FileHostUploadURL  string
	FileHostPrivateKey string
	FileHostTimeout    time.Duration

	// Mail
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	AppBaseURL   string

	// Fallback store for sub-resources not promoted to Postgres
	StorageBackend string
	StoragePath    string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pluto_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		AIAPIKey:      getEnv("AI_API_KEY", ""),
		AIAPIURL:      getEnv("AI_API_URL", "https://api.openai.com/v1/chat/completions"),
		AIModel:       getEnv("AI_MODEL", "gpt-4o-mini"),
		AISearchModel: getEnv("AI_SEARCH_MODEL", "gpt-4o-mini-search-preview"),
		AITimeout:     parseDuration(getEnv("AI_TIMEOUT", "60s")),

		FileHostURL:        getEnv("FILEHOST_URL", "https://api.imagekit.io/v1"),
		FileHostUploadURL:  getEnv("FILEHOST_UPLOAD_URL", "https://upload.imagekit.io/api/v1/files/upload"),
		FileHostPrivateKey: getEnv("FILEHOST_PRIVATE_KEY", ""),
		FileHostTimeout:    parseDuration(getEnv("FILEHOST_TIMEOUT", "15s")),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@plutopets.app"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:3000"),

		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		StoragePath:    getEnv("STORAGE_PATH", "data/pluto_store.json"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
