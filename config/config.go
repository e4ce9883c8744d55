package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort string
	// StoreDriver selects "postgres" (production) or "memory" (single-process dev mode).
	StoreDriver string
	Database    DatabaseConfig
	Redis       RedisConfig
	PubNub      PubNubConfig
	Checkout    CheckoutConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type PubNubConfig struct {
	PublishKey   string
	SubscribeKey string
	SecretKey    string
	UserID       string
}

func (c PubNubConfig) Enabled() bool {
	return c.PublishKey != "" && c.SubscribeKey != ""
}

type CheckoutConfig struct {
	ReservationTTL  time.Duration
	TransferCutoff  time.Duration
	QRSecret        string
	PaymentGateway  string
	GatewaySecret   string
	SweepCron       string
	SweepBatchSize  int
	AvailabilityTTL time.Duration
	Fees            FeePolicy
}

// FeePolicy holds percentages (5 means 5%).
type FeePolicy struct {
	PlatformFeePercent decimal.Decimal
	PaymentFeePercent  decimal.Decimal
	FeeTaxPercent      decimal.Decimal
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", "postgres"),
		Database:    GetDatabaseConfig(),
		Redis:       GetRedisConfig(),
		PubNub:      GetPubNubConfig(),
		Checkout:    GetCheckoutConfig(),
	}

	if path := os.Getenv("POLICY_FILE"); path != "" {
		policy, err := LoadPolicyFile(path)
		if err != nil {
			panic(err)
		}
		policy.Apply(&AppConfig.Checkout)
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	return &Config{
		HTTPPort:    "8081",
		StoreDriver: "memory",
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5433",
			User:     "postgres",
			Password: "postgres",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6380",
			DB:   1,
		},
		Checkout: CheckoutConfig{
			ReservationTTL:  10 * time.Minute,
			TransferCutoff:  4 * time.Hour,
			QRSecret:        "test-secret",
			PaymentGateway:  "sandbox",
			GatewaySecret:   "test-gateway-secret",
			SweepCron:       "*/1 * * * *",
			SweepBatchSize:  100,
			AvailabilityTTL: 5 * time.Second,
			Fees:            DefaultFeePolicy(),
		},
	}
}

func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		PlatformFeePercent: decimal.NewFromInt(5),
		PaymentFeePercent:  decimal.NewFromInt(2),
		FeeTaxPercent:      decimal.NewFromInt(18),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("REDIS_DB", 0),
	}
}

func GetPubNubConfig() PubNubConfig {
	return PubNubConfig{
		PublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		SubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		SecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		UserID:       getEnv("PUBNUB_USER_ID", "checkout-engine"),
	}
}

func GetCheckoutConfig() CheckoutConfig {
	defaults := DefaultFeePolicy()
	return CheckoutConfig{
		ReservationTTL:  getEnvAsDuration("RESERVATION_TTL", "10m"),
		TransferCutoff:  getEnvAsDuration("TRANSFER_CUTOFF", "4h"),
		QRSecret:        getEnv("QR_SECRET", ""),
		PaymentGateway:  getEnv("PAYMENT_GATEWAY", "sandbox"),
		GatewaySecret:   getEnv("PAYMENT_GATEWAY_SECRET", ""),
		SweepCron:       getEnv("SWEEP_CRON", "*/1 * * * *"),
		SweepBatchSize:  getEnvAsInt("SWEEP_BATCH_SIZE", 200),
		AvailabilityTTL: getEnvAsDuration("AVAILABILITY_TTL", "5s"),
		Fees: FeePolicy{
			PlatformFeePercent: getEnvAsDecimal("PLATFORM_FEE_PERCENT", defaults.PlatformFeePercent),
			PaymentFeePercent:  getEnvAsDecimal("PAYMENT_FEE_PERCENT", defaults.PaymentFeePercent),
			FeeTaxPercent:      getEnvAsDecimal("FEE_TAX_PERCENT", defaults.FeeTaxPercent),
		},
	}
}

// Policy is the optional YAML file referenced by POLICY_FILE.
// Any field left out keeps the environment value.
type Policy struct {
	ReservationTTL string `yaml:"reservation_ttl"`
	TransferCutoff string `yaml:"transfer_cutoff"`
	Fees           struct {
		PlatformPercent *float64 `yaml:"platform_percent"`
		PaymentPercent  *float64 `yaml:"payment_percent"`
		TaxPercent      *float64 `yaml:"tax_percent"`
	} `yaml:"fees"`
}

func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return ParsePolicy(data)
}

func ParsePolicy(data []byte) (*Policy, error) {
	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	if policy.ReservationTTL != "" {
		if _, err := time.ParseDuration(policy.ReservationTTL); err != nil {
			return nil, fmt.Errorf("reservation_ttl: %w", err)
		}
	}
	if policy.TransferCutoff != "" {
		if _, err := time.ParseDuration(policy.TransferCutoff); err != nil {
			return nil, fmt.Errorf("transfer_cutoff: %w", err)
		}
	}
	return &policy, nil
}

func (p *Policy) Apply(c *CheckoutConfig) {
	if d, err := time.ParseDuration(p.ReservationTTL); err == nil && p.ReservationTTL != "" {
		c.ReservationTTL = d
	}
	if d, err := time.ParseDuration(p.TransferCutoff); err == nil && p.TransferCutoff != "" {
		c.TransferCutoff = d
	}
	if p.Fees.PlatformPercent != nil {
		c.Fees.PlatformFeePercent = decimal.NewFromFloat(*p.Fees.PlatformPercent)
	}
	if p.Fees.PaymentPercent != nil {
		c.Fees.PaymentFeePercent = decimal.NewFromFloat(*p.Fees.PaymentPercent)
	}
	if p.Fees.TaxPercent != nil {
		c.Fees.FeeTaxPercent = decimal.NewFromFloat(*p.Fees.TaxPercent)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, fallback)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}

func getEnvAsDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return d
}
