// internal/config/config.go
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Host        string
	Port        int
	DBPath      string
	PostgresDSN string // empty means local-only mode
	UserID      string
}

// Load reads .env when present, then the environment. Every setting has
// a default; POSTGRES_DSN is optional and its absence selects the
// local-only (unsynced) mode.
func Load(log *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using system env")
	}

	return &Config{
		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnvInt("PORT", 8080, log),
		DBPath:      getEnv("DB_PATH", "chatfit.db"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		UserID:      getEnv("USER_ID", "local-user"),
	}
}

func getEnv(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int, log *zap.Logger) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Warn("invalid integer env value, using default",
			zap.String("key", key), zap.String("value", val))
		return fallback
	}
	return parsed
}
