package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
	DriverDynamoDB = "dynamodb"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"memory"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	SqlitePath      string        `env:"SQLITE_PATH" envDefault:"./data/contact.db"`
	DynamoDBTable   string        `env:"DYNAMODB_TABLE"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads an optional .env file and parses the environment into Config.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected store driver has what it needs.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for store driver %q", c.StoreDriver)
		}
	case DriverSqlite:
		if c.SqlitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required for store driver %q", c.StoreDriver)
		}
	case DriverDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("config: DYNAMODB_TABLE is required for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.StoreDriver)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
