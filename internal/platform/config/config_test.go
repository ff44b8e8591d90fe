package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MemoryDriver(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "ledger-events", cfg.KafkaTopic)
	assert.Equal(t, "100-M", cfg.RateLimit)
}

func TestLoadConfig_PostgresNeedsURL(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PGSQL_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "sqlite")
}

func TestLoadConfig_TracingEndpoint(t *testing.T) {
	viper.Reset()
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, "ledger-core", cfg.ServiceName)

	viper.Reset()
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", " otel-collector:4317 ")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")

	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "otel-collector:4317", cfg.OTLPEndpoint)
	assert.False(t, cfg.OTLPInsecure)
}
