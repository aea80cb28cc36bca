package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "BASE_URL", "REDIS_ADDR", "REDIS_DB", "KAFKA_BROKERS", "JAEGER_ENDPOINT", "IDEMPOTENCY_TTL_SECONDS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)
	assert.Empty(t, cfg.Server.LogLevel)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "booking-events", cfg.Kafka.TopicBookingEvents)
	assert.Equal(t, 24*time.Hour, cfg.Business.IdempotencyTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("BASE_URL", "https://unbolt.example.com/")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Load()

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "https://unbolt.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Minute, cfg.Business.IdempotencyTTL)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
}
