package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// RedisConfig holds Redis connection configuration.
// An empty URL disables the update stream.
type RedisConfig struct {
	URL string
}

// RefreshConfig controls the refresh scheduler
type RefreshConfig struct {
	League            string
	Interval          time.Duration
	FetchTimeout      time.Duration
	DetailConcurrency int
}

// ProviderConfig holds scrape provider settings
type ProviderConfig struct {
	ESPNBaseURL string
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Refresh  RefreshConfig
	Provider ProviderConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        getEnv("SERVER_ADDR", ":5000"),
			CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Refresh: RefreshConfig{
			League:            getEnv("LEAGUE", "basketball_nba"),
			Interval:          getEnvDuration("REFRESH_INTERVAL", 10*time.Second),
			FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
			DetailConcurrency: getEnvInt("DETAIL_CONCURRENCY", 4),
		},
		Provider: ProviderConfig{
			ESPNBaseURL: getEnv("ESPN_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvList splits a comma-separated variable, dropping blank entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
