package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"dispatch/internal/core/domain/model/order"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort   string `yaml:"http_port"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	AMQPURL          string `yaml:"amqp_url"`
	AMQPPushExchange string `yaml:"amqp_push_exchange"`

	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	PushRelaySchedule      string `yaml:"push_relay_schedule"`
	PushRelayBatch         int    `yaml:"push_relay_batch"`
	OrderStrictDisposition bool   `yaml:"order_strict_disposition"`
}

func defaultConfig() Config {
	return Config{
		HTTPPort:          "8080",
		DBPort:            "5432",
		DBSslMode:         "disable",
		AMQPPushExchange:  "push_notifications",
		SMTPPort:          587,
		LogLevel:          "info",
		PushRelaySchedule: "*/5 * * * * *",
		PushRelayBatch:    100,
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file at
// path (skipped when path is empty), then a .env file in the working
// directory, then the process environment. Later sources win.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("HTTP_PORT", &c.HTTPPort)
	str("DB_HOST", &c.DBHost)
	str("DB_PORT", &c.DBPort)
	str("DB_USER", &c.DBUser)
	str("DB_PASSWORD", &c.DBPassword)
	str("DB_NAME", &c.DBName)
	str("DB_SSLMODE", &c.DBSslMode)
	str("AMQP_URL", &c.AMQPURL)
	str("AMQP_PUSH_EXCHANGE", &c.AMQPPushExchange)
	str("SMTP_HOST", &c.SMTPHost)
	num("SMTP_PORT", &c.SMTPPort)
	str("SMTP_USER", &c.SMTPUser)
	str("SMTP_PASSWORD", &c.SMTPPassword)
	str("SMTP_FROM", &c.SMTPFrom)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FILE", &c.LogFile)
	str("PUSH_RELAY_SCHEDULE", &c.PushRelaySchedule)
	num("PUSH_RELAY_BATCH", &c.PushRelayBatch)
	flag("ORDER_STRICT_DISPOSITION", &c.OrderStrictDisposition)

	return errors.Join(errs...)
}

// Validate reports every missing required setting at once.
func (c Config) Validate() error {
	var errs []error
	for _, r := range []struct{ key, value string }{
		{"DB_HOST", c.DBHost},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"AMQP_URL", c.AMQPURL},
	} {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", r.key))
		}
	}
	if c.PushRelayBatch < 1 {
		errs = append(errs, errors.New("PUSH_RELAY_BATCH must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) DispositionPolicy() order.TransitionPolicy {
	if c.OrderStrictDisposition {
		return order.Strict
	}
	return order.Permissive
}
