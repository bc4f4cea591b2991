// Package config provides configuration structures and validation for the
// application. It handles environment-based configuration for the HTTP
// server, the simulated settlement processor, the authorization gate and the
// ledger persistence backends.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger backend selectors
const (
	LedgerBackendMemory = "memory"
	LedgerBackendRedis  = "redis"
	LedgerBackendMongo  = "mongo"
)

// Config holds the complete application configuration. Each field represents
// a subsystem's configuration and is validated during application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Account     AccountConfig
	Settlement  SettlementConfig
	Auth        AuthConfig
	Ledger      LedgerConfig
	Redis       RedisConfig
	MongoDB     MongoDBConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// AccountConfig contains the seed state of the single account. The balance
// lives in memory for the process lifetime and resets on restart.
type AccountConfig struct {
	SeedBalance decimal.Decimal
}

// SettlementConfig tunes the simulated remote processor
type SettlementConfig struct {
	Latency     time.Duration // Simulated network delay per settlement
	FailureRate float64       // Probability of an injected network failure, 0..1
}

// AuthConfig contains authorization gate configuration
type AuthConfig struct {
	MinPINLength int // Minimum accepted PIN length
}

// LedgerConfig contains transaction history configuration
type LedgerConfig struct {
	MaxEntries int    // Cap on retained transactions
	Backend    string // memory, redis or mongo
}

// RedisConfig contains Redis configuration, used when the ledger backend is redis
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// MongoDBConfig contains MongoDB configuration, used when the ledger backend is mongo
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Account config
	if c.Account.SeedBalance.IsNegative() {
		validationErrors = append(validationErrors, "ACCOUNT_SEED_BALANCE must not be negative")
	}

	// Validate Settlement config
	if c.Settlement.Latency < 0 {
		validationErrors = append(validationErrors, "SETTLEMENT_LATENCY must not be negative")
	}
	if c.Settlement.FailureRate < 0 || c.Settlement.FailureRate > 1 {
		validationErrors = append(validationErrors, "SETTLEMENT_FAILURE_RATE must be between 0 and 1")
	}

	// Validate Auth config
	if c.Auth.MinPINLength <= 0 {
		validationErrors = append(validationErrors, "AUTH_MIN_PIN_LENGTH must be greater than 0")
	}

	// Validate Ledger config
	if c.Ledger.MaxEntries <= 0 {
		validationErrors = append(validationErrors, "LEDGER_MAX_ENTRIES must be greater than 0")
	}
	switch c.Ledger.Backend {
	case LedgerBackendMemory:
	case LedgerBackendRedis:
		if c.Redis.Addr == "" {
			validationErrors = append(validationErrors, "REDIS_ADDR is required for the redis ledger backend")
		}
		if c.Redis.Timeout <= 0 {
			validationErrors = append(validationErrors, "REDIS_TIMEOUT must be greater than 0")
		}
	case LedgerBackendMongo:
		if c.MongoDB.URI == "" {
			validationErrors = append(validationErrors, "MONGO_URI is required for the mongo ledger backend")
		}
		if c.MongoDB.Database == "" {
			validationErrors = append(validationErrors, "MONGO_DATABASE is required for the mongo ledger backend")
		}
		if c.MongoDB.Timeout <= 0 {
			validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
		}
		if c.MongoDB.MaxPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
		}
	default:
		validationErrors = append(validationErrors, "LEDGER_BACKEND must be one of memory, redis, mongo")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
