package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Quote vendor credentials. All four must be set for the vendor client
	// to be enabled; otherwise the advisor runs API-only against the feed
	// or pre-loaded history.
	QuoteAPIKey     string
	QuoteClientCode string
	QuotePassword   string
	QuoteTOTPSecret string

	// Infrastructure
	RedisAddr     string
	RedisPassword string
	SQLitePath    string
	MetricsAddr   string
	HTTPAddr      string

	// Bar feed. Empty FeedURL disables the feed.
	FeedURL          string
	SubscribeSymbols string

	// Quote polling interval in seconds (vendor client only).
	QuotePollSeconds int

	// Result cache TTL in seconds (Redis only).
	CacheTTLSeconds int

	// Per-symbol bar history capacity.
	HistoryCapacity int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		QuoteAPIKey:     getEnv("QUOTE_API_KEY", ""),
		QuoteClientCode: getEnv("QUOTE_CLIENT_CODE", ""),
		QuotePassword:   getEnv("QUOTE_PASSWORD", ""),
		QuoteTOTPSecret: getEnv("QUOTE_TOTP_SECRET", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "data/advisor.db"),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),

		FeedURL:          getEnv("FEED_URL", ""),
		SubscribeSymbols: getEnv("SUBSCRIBE_SYMBOLS", ""),

		QuotePollSeconds: getEnvInt("QUOTE_POLL_SECONDS", 60),

		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 300),
		HistoryCapacity: getEnvInt("HISTORY_CAPACITY", 500),
	}
}

// QuoteAPIEnabled reports whether all vendor credentials are present.
func (c *Config) QuoteAPIEnabled() bool {
	return c.QuoteAPIKey != "" && c.QuoteClientCode != "" &&
		c.QuotePassword != "" && c.QuoteTOTPSecret != ""
}

// CacheTTL returns the Redis cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ParseSymbols splits SubscribeSymbols into a clean symbol list.
func (c *Config) ParseSymbols() []string {
	parts := strings.Split(c.SubscribeSymbols, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		symbols = append(symbols, strings.ToUpper(p))
	}
	return symbols
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
