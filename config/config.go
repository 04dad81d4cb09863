package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort              = "8080"
	DefaultAccessTokenTTL    = "15m"
	DefaultRefreshTokenTTL   = "7d"
	DefaultBlacklistSweepMin = 5
	DefaultCookiePath        = "/api/v1"

	developmentEnv = "development"
	productionEnv  = "production"
)

type Config struct {
	Env                    string
	Port                   string
	DBURL                  string
	TokenSecret            string
	AccessTokenTTL         time.Duration
	RefreshTokenTTL        time.Duration
	RedisAddr              string
	BlacklistSweepInterval time.Duration
	CookiePath             string
}

func (c *Config) IsProduction() bool {
	return c.Env == productionEnv
}

// Load reads config/.env.<env> if present, then the process
// environment. Environment variables take precedence over file values.
func Load() *Config {
	env := getEnv("ENV", developmentEnv)

	suffix := "dev"
	if env == productionEnv {
		suffix = "prod"
	}
	// godotenv never overrides variables that are already set, which
	// gives the env-over-file precedence for free.
	_ = godotenv.Load(filepath.Join("config", ".env."+suffix))

	return &Config{
		Env:                    env,
		Port:                   getEnv("PORT", DefaultPort),
		DBURL:                  mustGetEnv("DB_URL"),
		TokenSecret:            mustGetEnv("TOKEN_SECRET"),
		AccessTokenTTL:         getEnvAsDuration("ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		RefreshTokenTTL:        getEnvAsDuration("REFRESH_TOKEN_TTL", DefaultRefreshTokenTTL),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		BlacklistSweepInterval: time.Duration(getEnvAsInt("BLACKLIST_SWEEP_MINUTES", DefaultBlacklistSweepMin)) * time.Minute,
		CookiePath:             getEnv("COOKIE_PATH", DefaultCookiePath),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	d, err := parseLifetime(valStr)
	if err != nil {
		log.Printf("Invalid duration for %s, using default %s", key, defaultVal)
		d, _ = parseLifetime(defaultVal)
	}
	return d
}

// parseLifetime understands time.ParseDuration syntax plus a "d"
// suffix for whole days, so lifetimes can be written as "15m" or "7d".
func parseLifetime(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		if days, err := strconv.Atoi(strings.TrimSuffix(s, "d")); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
