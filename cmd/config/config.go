package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// MoMo sandbox credentials published in the MoMo developer docs. They are only
// applied outside production, see Validate.
const (
	momoSandboxPartnerCode = "MOMO"
	momoSandboxAccessKey   = "F8BBA842ECF85"
	momoSandboxSecretKey   = "K951B6PE1waDMi640xX08PD3vg6EkVlz"
	momoSandboxEndpoint    = "https://test-payment.momo.vn/v2/gateway/api/create"
)

type Config struct {
	Environment string `env:"APP_ENV" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL"`
	ServiceName string `env:"SERVICE_NAME" env-default:"runhub-checkout"`

	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Internal InternalConfig
	Order    OrderConfig
	Momo     MomoConfig
	Stripe   StripeConfig
	Site     SiteConfig
}

type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"45s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            int           `env:"DB_PORT" env-default:"3306"`
	User            string        `env:"DB_USER" env-default:"root"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME" env-default:"runhub"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
	MigrationPath   string        `env:"DB_MIGRATION_PATH" env-default:"migrations"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost"`
	Port     int    `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type RabbitMQConfig struct {
	Host     string `env:"RABBITMQ_HOST" env-default:"localhost"`
	Port     int    `env:"RABBITMQ_PORT" env-default:"5672"`
	User     string `env:"RABBITMQ_USER" env-default:"guest"`
	Password string `env:"RABBITMQ_PASSWORD" env-default:"guest"`
}

type KafkaConfig struct {
	// Brokers left empty disables event publishing.
	Brokers []string `env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `env:"KAFKA_ORDER_TOPIC" env-default:"checkout.order-events"`
}

// AuthConfig holds the JWT secret of the hosted auth provider. Tokens are
// issued there; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET"`
}

type InternalConfig struct {
	APIKey  string `env:"INTERNAL_API_KEY"`
	BaseURL string `env:"INTERNAL_BASE_URL" env-default:"http://localhost:8080"`
}

type OrderConfig struct {
	PaymentExpiration time.Duration `env:"ORDER_PAYMENT_EXPIRATION" env-default:"2h"`
}

type MomoConfig struct {
	PartnerCode string        `env:"MOMO_PARTNER_CODE"`
	AccessKey   string        `env:"MOMO_ACCESS_KEY"`
	SecretKey   string        `env:"MOMO_SECRET_KEY"`
	Endpoint    string        `env:"MOMO_ENDPOINT"`
	RedirectURL string        `env:"MOMO_REDIRECT_URL"`
	IPNURL      string        `env:"MOMO_IPN_URL"`
	RequestType string        `env:"MOMO_REQUEST_TYPE" env-default:"captureWallet"`
	Timeout     time.Duration `env:"MOMO_TIMEOUT" env-default:"30s"`
}

type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
}

type SiteConfig struct {
	BaseURL string `env:"SITE_BASE_URL" env-default:"http://localhost:3000"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) applyDefaults() {
	brokers := make([]string, 0, len(c.Kafka.Brokers))
	for _, b := range c.Kafka.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.Kafka.Brokers = brokers

	if c.Momo.RedirectURL == "" {
		c.Momo.RedirectURL = c.Site.BaseURL + "/checkout/result"
	}
	if c.Momo.IPNURL == "" {
		c.Momo.IPNURL = c.Site.BaseURL + "/api/checkout/momo/callback"
	}
	if c.IsProduction() {
		return
	}
	if c.Momo.PartnerCode == "" {
		c.Momo.PartnerCode = momoSandboxPartnerCode
	}
	if c.Momo.AccessKey == "" {
		c.Momo.AccessKey = momoSandboxAccessKey
	}
	if c.Momo.SecretKey == "" {
		c.Momo.SecretKey = momoSandboxSecretKey
	}
	if c.Momo.Endpoint == "" {
		c.Momo.Endpoint = momoSandboxEndpoint
	}
}

// Validate rejects production configs that would fall back to sandbox or empty credentials.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	missing := make([]string, 0)
	if c.Momo.PartnerCode == "" {
		missing = append(missing, "MOMO_PARTNER_CODE")
	}
	if c.Momo.AccessKey == "" {
		missing = append(missing, "MOMO_ACCESS_KEY")
	}
	if c.Momo.SecretKey == "" {
		missing = append(missing, "MOMO_SECRET_KEY")
	}
	if c.Momo.Endpoint == "" {
		missing = append(missing, "MOMO_ENDPOINT")
	}
	if c.Stripe.SecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "AUTH_JWT_SECRET")
	}
	if c.Internal.APIKey == "" {
		missing = append(missing, "INTERNAL_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required production settings: %v", missing)
	}
	return nil
}

// GetDSN builds the MySQL DSN. multiStatements is needed by the migration runner.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
