// internal/config/config.go
//
// Runtime configuration, read from the environment once at startup.
// main loads .env first (godotenv), so values there behave like real env vars.
//
// Invalid numeric values fall back to their defaults with a warning.
package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Config holds every tunable of the server.
type Config struct {
	Port           string
	LogLevel       string
	ClientOrigin   string
	RoundSeconds   int
	CatalogFile    string
	DailySalt      string
	RateLimitRPS   int
	RateLimitBurst int
}

// Load reads the environment.
func Load() Config {
	return Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		RoundSeconds:   getEnvInt("ROUND_SECONDS", 30),
		CatalogFile:    os.Getenv("WORDS_CATALOG_FILE"),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt reads a positive int, falling back to def when unset or invalid.
func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", k).Str("value", v).Int("default", def).Msg("invalid int in environment, using default")
		return def
	}
	return n
}
