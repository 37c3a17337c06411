package config

import (
	"strconv"
	"time"
)

// FitmentSettings are the runtime knobs of the shop API.
type FitmentSettings struct {
	QueryTimeout    time.Duration
	WidthPolicy     string
	AssembleWorkers int
	PublicCacheTTL  time.Duration
	RateLimit       int
	RateWindow      time.Duration
}

func LoadFitmentSettings() FitmentSettings {
	return FitmentSettings{
		QueryTimeout:    durationEnv("FITMENT_QUERY_TIMEOUT", 10*time.Second),
		WidthPolicy:     GetEnv("FITMENT_WIDTH_POLICY", "front"),
		AssembleWorkers: intEnv("FITMENT_ASSEMBLE_WORKERS", 4),
		PublicCacheTTL:  durationEnv("PUBLIC_CACHE_TTL", time.Hour),
		RateLimit:       intEnv("SHOP_RATE_LIMIT", 120),
		RateWindow:      durationEnv("SHOP_RATE_WINDOW", time.Minute),
	}
}

func durationEnv(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func intEnv(key string, def int) int {
	n, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
