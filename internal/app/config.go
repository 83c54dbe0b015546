package app

import (
	"strings"
	"time"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/utils"
)

type Config struct {
	Addr                   string
	JWTSecretKey           string
	AllowOrigins           []string
	NarrativeCacheCapacity int
	NarrativeCacheTTL      time.Duration
	TracingEnabled         bool
}

func LoadConfig(log *logger.Logger) Config {
	addr := utils.GetEnv("HTTP_ADDR", ":8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	cacheCapacity := utils.GetEnvAsInt("NARRATIVE_CACHE_CAPACITY", 256, log)
	cacheTTLSeconds := utils.GetEnvAsInt("NARRATIVE_CACHE_TTL_SECONDS", 3600, log)
	tracing := utils.GetEnvAsBool("TRACING_ENABLED", false, log)

	var origins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return Config{
		Addr:                   addr,
		JWTSecretKey:           jwtSecretKey,
		AllowOrigins:           origins,
		NarrativeCacheCapacity: cacheCapacity,
		NarrativeCacheTTL:      time.Duration(cacheTTLSeconds) * time.Second,
		TracingEnabled:         tracing,
	}
}
