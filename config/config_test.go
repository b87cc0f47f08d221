package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
http:
  address: ":8081"
database:
  host: localhost
  user: airline
  password: ${AIRLINE_DB_PASSWORD}
  name: airline
kafka:
  brokers: ["localhost:9092"]
auth:
  jwt_secret: ${AIRLINE_JWT_SECRET}
`

func TestParse_ExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("AIRLINE_DB_PASSWORD", "s3cret")
	t.Setenv("AIRLINE_JWT_SECRET", "")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Second, cfg.Database.LockTimeout())
	assert.Equal(t, "ticket-events", cfg.Kafka.TicketEventsTopic)
	assert.Equal(t, 3, cfg.Kafka.PublishRetries)
	assert.Equal(t, 10, cfg.Worker.AuditSweepMinutes)
	assert.Equal(t, time.Minute, cfg.Cache.FlightsTTL())
	assert.Equal(t, 1, cfg.Booking.MinCounter)
	assert.Equal(t, 100, cfg.Booking.MaxCounter)
	assert.Equal(t, 24*time.Hour, cfg.Booking.MaxSaleSkew())
	assert.False(t, cfg.Auth.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestParse_RejectsMissingDatabase(t *testing.T) {
	_, err := Parse([]byte("http:\n  address: \":80\"\n"))
	assert.Error(t, err)
}

func TestParse_RejectsBadCounterRange(t *testing.T) {
	_, err := Parse([]byte("database:\n  host: db\n  name: airline\nbooking:\n  min_counter: 10\n  max_counter: 5\n"))
	assert.Error(t, err)
}

func TestParse_RejectsNegativeValues(t *testing.T) {
	const db = "database:\n  host: db\n  name: airline\n"
	tests := []struct {
		name string
		yaml string
	}{
		{name: "audit sweep", yaml: db + "worker:\n  audit_sweep_minutes: -1\n"},
		{name: "publish retries", yaml: db + "kafka:\n  publish_retries: -2\n"},
		{name: "lock timeout", yaml: db + "  lock_timeout_seconds: -5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  host: db\n  name: airline\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Database.Host)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
