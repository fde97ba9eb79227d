package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration from environment.
type Config struct {
	HTTPPort      string
	DatabaseURL   string
	DBPoolSize    int
	RedisURL      string
	RedisPoolSize int
	CacheTTL      time.Duration

	KafkaBrokers    []string
	KafkaTopic      string
	KafkaPartitions int

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	WeatherTimeout     time.Duration
	WeatherRefresh     time.Duration // 0 disables the snapshot scheduler
	SnapshotHistoryMax int
}

// Load reads configuration from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBPoolSize:    getIntEnv("DB_POOL_SIZE", 50),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPoolSize: getIntEnv("REDIS_POOL_SIZE", 100),
		CacheTTL:      getDurationEnv("CACHE_TTL", 5*time.Minute),

		KafkaBrokers:    getSliceEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:      getEnv("KAFKA_TASK_TOPIC", "task-events"),
		KafkaPartitions: getIntEnv("KAFKA_PARTITIONS", 8),

		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather"),
		WeatherTimeout:     getDurationEnv("WEATHER_TIMEOUT", 10*time.Second),
		WeatherRefresh:     getDurationEnv("WEATHER_REFRESH_INTERVAL", 0),
		SnapshotHistoryMax: getIntEnv("SNAPSHOT_HISTORY_MAX", 96),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getSliceEnv(key, defaultVal string) []string {
	if v := os.Getenv(key); v != "" {
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return []string{defaultVal}
}
