package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var (
	// RedisClient backs the rate limiter.
	RedisClient *redis.Client
	// PublicCacheClient holds public storefront payloads on its own DB index so
	// it can be flushed without touching rate limit counters.
	PublicCacheClient *redis.Client
	Ctx               = context.Background()
)

func ConnectRedis() {
	// read Redis URL
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		// Default to local Redis for development
		redisURL = "redis://localhost:6379"
		Log.Warn().Str("url", redisURL).Msg("⚠️  REDIS_URL not set, using local Redis")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		panic(fmt.Sprintf("❌ invalid REDIS_URL: %v", err))
	}

	RedisClient = redis.NewClient(opt)

	// test connection
	res, err := RedisClient.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("❌ failed to connect to Redis: %v", err))
	}
	Log.Info().Str("ping", res).Msg("✅ Connected to Redis")

	publicOpt := *opt
	publicOpt.DB = publicCacheDB()
	PublicCacheClient = redis.NewClient(&publicOpt)
	if err := PublicCacheClient.Ping(Ctx).Err(); err != nil {
		// The public cache is optional; readers fall through to the database.
		Log.Error().Err(err).Int("db", publicOpt.DB).Msg("❌ Public cache unavailable")
		PublicCacheClient = nil
	}
}

func publicCacheDB() int {
	db, err := strconv.Atoi(GetEnv("REDIS_PUBLIC_DB", "1"))
	if err != nil || db < 0 {
		return 1
	}
	return db
}
