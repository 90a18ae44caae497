// Package config loads the engine configuration from the environment,
// optionally seeded by .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config is the full runtime configuration of the engine.
type Config struct {
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPass      string
	StoreDriver string
	SeedFile    string

	RedisAddr     string
	RedisPassword string
	PageCacheTTL  time.Duration

	Port     string
	BaseURL  string
	LogLevel string

	GenerationCities   []string
	GenerationSchedule string
	GenerationWorkers  int
}

// PostgresURL returns the lib/pq connection string.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// Load reads .env.local and .env when present, then the process environment.
func Load() (*Config, error) {
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, d string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return d
	}

	ttl, err := time.ParseDuration(get("PAGE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("PAGE_CACHE_TTL: %w", err)
	}
	workers, err := strconv.Atoi(get("GENERATION_WORKERS", "4"))
	if err != nil || workers <= 0 {
		return nil, fmt.Errorf("GENERATION_WORKERS must be a positive integer")
	}

	cfg := &Config{
		DBHost:             get("DB_HOST", "localhost"),
		DBPort:             get("DB_PORT", "5432"),
		DBName:             get("DB_NAME", "seo_db"),
		DBUser:             get("DB_USER", "seo_user"),
		DBPass:             get("DB_PASS", ""),
		StoreDriver:        get("STORE_DRIVER", StoreDriverPostgres),
		SeedFile:           get("SEED_FILE", ""),
		RedisAddr:          get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      get("REDIS_PASSWORD", ""),
		PageCacheTTL:       ttl,
		Port:               get("PORT", "8080"),
		BaseURL:            strings.TrimRight(get("BASE_URL", "http://localhost:3000"), "/"),
		LogLevel:           get("LOG_LEVEL", "info"),
		GenerationCities:   splitList(get("GENERATION_CITIES", "")),
		GenerationSchedule: get("GENERATION_SCHEDULE", ""),
		GenerationWorkers:  workers,
	}
	if cfg.StoreDriver != StoreDriverPostgres && cfg.StoreDriver != StoreDriverMemory {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}
	return cfg, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
