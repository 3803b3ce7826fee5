package app

import (
	"strings"
	"time"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/utils"
)

type Config struct {
	Port            string
	Environment     string
	Version         string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CartTTL         time.Duration
	MediaDir        string
	MediaBaseURL    string
	SeedPath        string
	AllowedOrigins  []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	cartTTLSeconds := utils.GetEnvAsInt("CART_TTL", 604800, log)
	origins := strings.Split(utils.GetEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", log), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		Environment:     utils.GetEnv("APP_ENV", "local", log),
		Version:         utils.GetEnv("APP_VERSION", "dev", log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		CartTTL:         time.Duration(cartTTLSeconds) * time.Second,
		MediaDir:        utils.GetEnv("MEDIA_DIR", "./media", log),
		MediaBaseURL:    utils.GetEnv("MEDIA_BASE_URL", "http://localhost:8080", log),
		SeedPath:        utils.GetEnv("SEED_PATH", "configs/seed_catalog.yaml", log),
		AllowedOrigins:  origins,
	}
}
