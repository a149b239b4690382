package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	content := `
http:
  address: ":8080"
database:
  host: "db.example.com"
  port: 5432
  user: "paraglide"
  password: "secret"
  name: "paraglide"
  ssl_mode: "disable"
redis:
  addr: "localhost:6379"
kafka:
  brokers:
    - "localhost:9092"
  booking_topic: "bookings"
  notifications_topic: "booking-notifications"
  group_id: "paraglide-worker"
booking:
  locations_cache_ttl_seconds: 300
worker:
  expiration_sweep_minutes: 30
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "bookings", cfg.Kafka.BookingTopic)
	assert.Equal(t, 300, cfg.Booking.LocationsCacheTTL)
	assert.Equal(t, 30, cfg.Worker.ExpirationSweepMinutes)
	assert.Equal(t,
		"host=db.example.com port=5432 user=paraglide password=secret dbname=paraglide sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("http: [broken"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
