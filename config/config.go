package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Business BusinessConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	BaseURL  string
	LogLevel string
}

// RedisConfig is optional; an empty Addr disables idempotency keys
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig is optional; no brokers disables event publishing
type KafkaConfig struct {
	Brokers            []string
	TopicBookingEvents string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type BusinessConfig struct {
	IdempotencyTTL time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "3000")

	cfg := &Config{
		Server: ServerConfig{
			Port:     port,
			Env:      getEnv("ENV", "development"),
			BaseURL:  strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+port), "/"),
			LogLevel: getEnv("LOG_LEVEL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:            splitList(getEnv("KAFKA_BROKERS", "")),
			TopicBookingEvents: getEnv("KAFKA_TOPIC_BOOKING_EVENTS", "booking-events"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
		Business: BusinessConfig{
			IdempotencyTTL: time.Duration(getEnvInt("IDEMPOTENCY_TTL_SECONDS", 86400)) * time.Second,
		},
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultVal)))
	if err != nil {
		return defaultVal
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
