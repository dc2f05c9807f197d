package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported storage backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds every setting of the lobster binary. Values come from
// LOBSTER_* environment variables and may be overridden by CLI flags.
type Config struct {
	Addr      string `env:"LOBSTER_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOBSTER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOBSTER_LOG_FORMAT" envDefault:"text"`

	Backend       string        `env:"LOBSTER_BACKEND" envDefault:"memory"`
	RedisAddr     string        `env:"LOBSTER_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"LOBSTER_REDIS_PASSWORD"`
	RedisDB       int           `env:"LOBSTER_REDIS_DB" envDefault:"0"`
	RedisPrefix   string        `env:"LOBSTER_REDIS_PREFIX" envDefault:"lobster:"`
	RedisTTL      time.Duration `env:"LOBSTER_REDIS_TTL" envDefault:"0s"`
	SQLitePath    string        `env:"LOBSTER_SQLITE_PATH" envDefault:"lobster.db"`

	TemplateKey     string        `env:"LOBSTER_TEMPLATE_KEY" envDefault:"AdventureArray"`
	SessionPrefix   string        `env:"LOBSTER_SESSION_PREFIX" envDefault:"session:"`
	LockTTL         time.Duration `env:"LOBSTER_LOCK_TTL" envDefault:"30s"`
	DistributedLock bool          `env:"LOBSTER_DISTRIBUTED_LOCK" envDefault:"false"`

	JWTKey      string        `env:"LOBSTER_JWT_KEY"`
	JWTIssuer   string        `env:"LOBSTER_JWT_ISSUER" envDefault:"lobster"`
	JWTAudience string        `env:"LOBSTER_JWT_AUDIENCE" envDefault:"lobster"`
	JWTSubject  string        `env:"LOBSTER_JWT_SUBJECT" envDefault:"lobster"`
	JWTTTL      time.Duration `env:"LOBSTER_JWT_TTL" envDefault:"10m"`

	// Base64 encoded 32-byte AES keys. Empty disables encryption at rest.
	EncryptionKey          string   `env:"LOBSTER_ENCRYPTION_KEY"`
	EncryptionFallbackKeys []string `env:"LOBSTER_ENCRYPTION_FALLBACK_KEYS" envSeparator:","`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration found in the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ErrMissingJWTKey is returned when a command needs to sign or verify tokens
// but no key was configured.
var ErrMissingJWTKey = errors.New("jwt key is required (LOBSTER_JWT_KEY or --jwt-key)")

// Validate checks the settings shared by every command. Commands that issue
// or verify tokens pass requireJWT.
func (c Config) Validate(requireJWT bool) error {
	switch c.Backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want memory, redis or sqlite)", c.Backend)
	}
	if c.Backend == BackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("sqlite backend requires a database path")
	}
	if c.DistributedLock && c.Backend != BackendRedis {
		return fmt.Errorf("distributed lock requires the redis backend")
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("lock ttl must be positive, got %s", c.LockTTL)
	}
	if requireJWT {
		if c.JWTKey == "" {
			return ErrMissingJWTKey
		}
		if c.JWTTTL <= 0 {
			return fmt.Errorf("jwt ttl must be positive, got %s", c.JWTTTL)
		}
	}
	if _, _, err := c.EncryptionKeys(); err != nil {
		return err
	}
	return nil
}

// EncryptionKeys decodes the active and fallback keys. A nil active key
// means encryption is disabled.
func (c Config) EncryptionKeys() (active []byte, fallback [][]byte, err error) {
	if c.EncryptionKey == "" {
		if len(c.EncryptionFallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("fallback encryption keys given without an active key")
		}
		return nil, nil, nil
	}

	active, err = decodeKey(c.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("encryption key: %w", err)
	}
	for i, k := range c.EncryptionFallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("fallback encryption key %d: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
