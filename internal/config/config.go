// Package config loads server configuration from the environment.
// cmd/server loads a .env file first (godotenv), so local development
// needs no exported shell variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port   int
	DBPath string

	SessionSecret string
	SessionTTL    time.Duration
	BcryptCost    int

	// AllowedOrigins feed the CORS layer; credentials are always
	// allowed, so "*" is not a valid entry.
	AllowedOrigins []string

	LogLevel slog.Level
}

func Load() *Config {
	return &Config{
		Port:           getEnvInt("PORT", 8080),
		DBPath:         getEnv("DB_PATH", "data/fintrack.db"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
		BcryptCost:     getEnvInt("BCRYPT_COST", 0),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:63342"}),
		LogLevel:       getEnvLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}
	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if len(c.SessionSecret) < 16 {
		problems = append(problems, "SESSION_SECRET must be set to at least 16 characters")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "session TTL must be positive")
	}
	if c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		problems = append(problems, fmt.Sprintf("bcrypt cost %d out of range [%d, %d]",
			c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			problems = append(problems, `CORS origin "*" cannot be combined with credentials; list origins explicitly`)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv(key))); err != nil {
		return fallback
	}
	return level
}
