package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"storefront/internal/core/domain/model/order"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	LogLevel  string
	LogFormat string

	JWTSecret string
	JWTIssuer string

	// RedisAddr empty selects in-process order locks.
	RedisAddr     string
	OrderLockTTL  time.Duration
	OrderLockWait time.Duration

	// AMQPURL empty disables change notifications.
	AMQPURL      string
	AMQPExchange string

	HistoryAuditSchedule string

	Pricing order.Pricing
}

func configDefaults() map[string]any {
	return map[string]any{
		"HTTP_PORT":                       "8080",
		"DB_HOST":                         "localhost",
		"DB_PORT":                         "5432",
		"DB_USER":                         "postgres",
		"DB_PASSWORD":                     "postgres",
		"DB_NAME":                         "storefront",
		"DB_SSLMODE":                      "disable",
		"LOG_LEVEL":                       "info",
		"LOG_FORMAT":                      "json",
		"JWT_SECRET":                      "",
		"JWT_ISSUER":                      "",
		"REDIS_ADDR":                      "",
		"ORDER_LOCK_TTL":                  "10s",
		"ORDER_LOCK_WAIT":                 "3s",
		"AMQP_URL":                        "",
		"AMQP_EXCHANGE":                   "storefront.orders",
		"HISTORY_AUDIT_SCHEDULE":          "0 */5 * * * *",
		"PRICING_TAX_RATE":                "0",
		"PRICING_SHIPPING_FLAT":           "0",
		"PRICING_FREE_SHIPPING_THRESHOLD": "0",
	}
}

// LoadConfig reads envFile when it exists, then the process environment,
// falling back to defaults. Variables already set in the environment win over
// the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range configDefaults() {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:             v.GetString("HTTP_PORT"),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		DBSslMode:            v.GetString("DB_SSLMODE"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		AMQPURL:              v.GetString("AMQP_URL"),
		AMQPExchange:         v.GetString("AMQP_EXCHANGE"),
		HistoryAuditSchedule: v.GetString("HISTORY_AUDIT_SCHEDULE"),
	}

	var err error
	if cfg.OrderLockTTL, err = parseDuration(v, "ORDER_LOCK_TTL"); err != nil {
		return Config{}, err
	}
	if cfg.OrderLockWait, err = parseDuration(v, "ORDER_LOCK_WAIT"); err != nil {
		return Config{}, err
	}
	if cfg.Pricing, err = parsePricing(v); err != nil {
		return Config{}, err
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func parsePricing(v *viper.Viper) (order.Pricing, error) {
	var (
		p   order.Pricing
		err error
	)
	if p.TaxRate, err = decimal.NewFromString(v.GetString("PRICING_TAX_RATE")); err != nil {
		return order.Pricing{}, fmt.Errorf("PRICING_TAX_RATE: %w", err)
	}
	if p.ShippingFlat, err = decimal.NewFromString(v.GetString("PRICING_SHIPPING_FLAT")); err != nil {
		return order.Pricing{}, fmt.Errorf("PRICING_SHIPPING_FLAT: %w", err)
	}
	if p.FreeShippingThreshold, err = decimal.NewFromString(v.GetString("PRICING_FREE_SHIPPING_THRESHOLD")); err != nil {
		return order.Pricing{}, fmt.Errorf("PRICING_FREE_SHIPPING_THRESHOLD: %w", err)
	}
	if err = p.Validate(); err != nil {
		return order.Pricing{}, err
	}
	return p, nil
}
