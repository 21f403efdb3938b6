package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/RemoteMovieDatabase/internal/domain"
	"github.com/joho/godotenv"
)

// Config is the process configuration of the HTTP service.
// Backend URLs live separately in the file at DatabaseConfigPath.
type Config struct {
	ServiceName        string
	ServerPort         string
	DatabaseConfigPath string
	HTTPTimeout        time.Duration
	ReadinessInterval  time.Duration
	BreakerEnabled     bool
	BreakerFailures    int
	BreakerOpenTimeout time.Duration
	LogSampleInterval  int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		ServiceName:        getEnv("SERVICE_NAME", "movie-database"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DatabaseConfigPath: getEnv("DATABASE_CONFIG_PATH", "secrets.json"),
		HTTPTimeout:        getDurationEnv("HTTP_TIMEOUT", 10*time.Second),
		ReadinessInterval:  getDurationEnv("READINESS_INTERVAL", 2*time.Second),
		BreakerEnabled:     getBoolEnv("BREAKER_ENABLED", false),
		BreakerFailures:    getIntEnv("BREAKER_FAILURES", 3),
		BreakerOpenTimeout: getDurationEnv("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		LogSampleInterval:  getIntEnv("LOG_SAMPLE_INTERVAL", 10),
	}
}

// LoadDatabaseConfig reads the backend URLs from a JSON file shaped
// {"urls":{"movies":{...},"images":{...}}}.
func LoadDatabaseConfig(path string) (domain.DatabaseConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.DatabaseConfig{}, fmt.Errorf("open database config: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var cfg domain.DatabaseConfig
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return domain.DatabaseConfig{}, fmt.Errorf("decode database config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.DatabaseConfig{}, fmt.Errorf("invalid database config %s: %w", path, err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		// Try parsing as duration string (e.g. "1m", "60s")
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Try parsing as integer seconds
		if i, err := strconv.Atoi(value); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
