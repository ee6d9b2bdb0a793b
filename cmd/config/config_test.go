package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/muhammadheryan/runhub-checkout/cmd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SITE_BASE_URL", "https://runhub.test")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Order.PaymentExpiration)
	assert.Equal(t, 30*time.Second, cfg.Momo.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "https://runhub.test/api/checkout/momo/callback", cfg.Momo.IPNURL)
	assert.Equal(t, "https://runhub.test/checkout/result", cfg.Momo.RedirectURL)
	// sandbox credentials outside production
	assert.NotEmpty(t, cfg.Momo.SecretKey)
	assert.NotEmpty(t, cfg.Momo.Endpoint)
}

func TestLoad_KafkaDisabledByDefault(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("KAFKA_BROKERS", "")
	require.NoError(t, os.Unsetenv("KAFKA_BROKERS"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_BlankKafkaBrokersIgnored(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("KAFKA_BROKERS", " , ")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("MOMO_SECRET_KEY", "")
	t.Setenv("STRIPE_SECRET_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOMO_SECRET_KEY")
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
}

func TestConfig_GetDSN(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Host: "db", Port: 3306, User: "app", Password: "secret", Name: "runhub",
	}}
	assert.Equal(t, "app:secret@tcp(db:3306)/runhub?parseTime=true&multiStatements=true", cfg.GetDSN())
}
