package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	// SecretKey signs session and password-reset tokens.
	SecretKey string
	// BaseURL is the externally reachable origin, used to build reset links.
	BaseURL string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	MailSender string

	// PageSize and SearchPageSize control contact-list pagination. The split
	// mirrors the legacy behavior (6 unfiltered, 2 when searching).
	PageSize       int
	SearchPageSize int

	ResetTokenTTLSeconds int
	SessionTTLSeconds    int
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/agenda?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),

		SecretKey: getEnv("SECRET_KEY", "change-me"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:8080"),

		SMTPHost:   getEnv("SMTP_HOST", "localhost"),
		SMTPPort:   getEnvInt("SMTP_PORT", 587),
		SMTPUser:   os.Getenv("SMTP_USERNAME"),
		SMTPPass:   os.Getenv("SMTP_PASSWORD"),
		MailSender: getEnv("MAIL_SENDER", "noreply@demo.com"),

		PageSize:       getEnvInt("PAGE_SIZE", 6),
		SearchPageSize: getEnvInt("SEARCH_PAGE_SIZE", 2),

		ResetTokenTTLSeconds: getEnvInt("RESET_TOKEN_TTL_SECONDS", 1800),
		SessionTTLSeconds:    getEnvInt("SESSION_TTL_SECONDS", 86400),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
