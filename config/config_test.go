package config_test

import (
	"testing"

	"spacy/config"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary.db")

	cfg := config.Get()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "primary.db", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "disable", cfg.DB.Postgres.Write.SSLMode)
	assert.Equal(t, "razorpay", cfg.Payment.Provider)
	assert.Equal(t, "reservation", cfg.Kafka.Topics.Reservation)
	assert.Equal(t, 300, cfg.Scheduler.CompleteIntervalSeconds)
	assert.Same(t, cfg, config.Get())
}
