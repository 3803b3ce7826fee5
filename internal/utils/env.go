package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/yungbote/storefront-backend/internal/logger"
)

// LoadDotEnv loads .env.local when APP_ENV is "local"; everywhere else the
// process environment is the single source.
func LoadDotEnv(log *logger.Logger) {
	appEnv := os.Getenv("APP_ENV")
	if appEnv != "local" {
		return
	}
	if err := godotenv.Load(".env.local"); err != nil {
		if log != nil {
			log.Warn("No .env.local found, relying on system environment", "error", err)
		}
		return
	}
	if log != nil {
		log.Info("Loaded .env.local for local development")
	}
}

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	raw, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable is not an int, using default", "raw", raw, "default", defaultVal)
		}
		return defaultVal
	}
	return val
}
