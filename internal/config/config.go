package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr  string
	StaticDir string

	// Open-data catalogue. A dataset is named either by its datastore
	// resource id directly, or by a package id to be resolved at boot.
	CatalogueBaseURL string
	EventsResourceID string
	EventsPackageID  string
	BranchesResource string
	BranchesPackage  string
	CatalogueTimeout time.Duration
	PageSize         int
	MaxRecords       int
	RefreshCron      string

	// RabbitMQ
	RabbitURL      string
	RabbitExchange string

	// Redis & caching
	RedisURL          string
	CacheTTLCalendar  time.Duration
	CacheTTLRecent    time.Duration
	ResultCacheSize   int
	DistanceCacheSize int

	// Rate limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	// CORS
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.StaticDir = getEnv("STATIC_DIR", "")

	cfg.CatalogueBaseURL = getEnv("CATALOGUE_BASE_URL", "https://ckan0.cf.opendata.inter.prod-toronto.ca")
	cfg.EventsResourceID = getEnv("EVENTS_RESOURCE_ID", "")
	cfg.EventsPackageID = getEnv("EVENTS_PACKAGE_ID", "")
	cfg.BranchesResource = getEnv("BRANCHES_RESOURCE_ID", "")
	cfg.BranchesPackage = getEnv("BRANCHES_PACKAGE_ID", "")
	cfg.CatalogueTimeout = getDuration("CATALOGUE_TIMEOUT", 30*time.Second)
	cfg.PageSize = getIntEnv("PAGE_SIZE", 100)
	cfg.MaxRecords = getIntEnv("MAX_RECORDS", 50000)
	cfg.RefreshCron = getEnv("REFRESH_CRON", "0 */6 * * *")

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "library.contact")

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTLCalendar = getDuration("CACHE_TTL_CALENDAR", 10*time.Minute)
	cfg.CacheTTLRecent = getDuration("CACHE_TTL_RECENT", 5*time.Minute)
	cfg.ResultCacheSize = getIntEnv("RESULT_CACHE_SIZE", 64)
	cfg.DistanceCacheSize = getIntEnv("DISTANCE_CACHE_SIZE", 4096)

	// Rate limiting defaults: 100 reqs / 1 min
	cfg.RLEnabled = getEnv("RL_ENABLED", "true") == "true"
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.CORSOrigins = getList("CORS_ORIGINS", []string{"*"})

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	// validation
	if cfg.EventsResourceID == "" && cfg.EventsPackageID == "" {
		return nil, fmt.Errorf("missing EVENTS_RESOURCE_ID (or EVENTS_PACKAGE_ID)")
	}
	if cfg.BranchesResource == "" && cfg.BranchesPackage == "" {
		return nil, fmt.Errorf("missing BRANCHES_RESOURCE_ID (or BRANCHES_PACKAGE_ID)")
	}
	if cfg.PageSize < 1 || cfg.PageSize > 1000 {
		return nil, fmt.Errorf("PAGE_SIZE out of range: %d", cfg.PageSize)
	}

	// Rabbit stays optional in dev; the contact form degrades to a
	// logging no-op without it.
	if cfg.AppEnv != "dev" && cfg.RabbitURL == "" {
		return nil, fmt.Errorf("missing RABBIT_URL (required when APP_ENV != dev)")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
