// Package config loads server settings from the environment.
package config

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds the settings shared by the serve and mcp commands.
type Config struct {
	Store    string `env:"STAGEDUP_STORE" envDefault:"file"`
	StoreDir string `env:"STAGEDUP_STORE_DIR" envDefault:".stagedup/stages"`

	RedisAddr     string        `env:"STAGEDUP_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"STAGEDUP_REDIS_PASSWORD"`
	RedisDB       int           `env:"STAGEDUP_REDIS_DB" envDefault:"0"`
	RedisTTL      time.Duration `env:"STAGEDUP_REDIS_TTL" envDefault:"0s"`

	SQLitePath string `env:"STAGEDUP_SQLITE_PATH" envDefault:".stagedup/stages.db"`

	// EncryptionKey is a hex encoded AES key of 16, 24 or 32 bytes. Empty disables encryption.
	EncryptionKey string `env:"STAGEDUP_ENCRYPTION_KEY"`
	// FallbackKeys are older keys still accepted for reading.
	FallbackKeys []string `env:"STAGEDUP_ENCRYPTION_FALLBACK_KEYS" envSeparator:","`

	Port     int    `env:"STAGEDUP_PORT" envDefault:"8080"`
	LogLevel string `env:"STAGEDUP_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env.Parse cannot check on its own.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreMemory, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want file, memory, redis or sqlite)", c.Store)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, _, err := c.Keys(); err != nil {
		return err
	}
	return nil
}

// Keys decodes the encryption keys. A nil active key means encryption is off.
func (c Config) Keys() (active []byte, fallbacks [][]byte, err error) {
	if c.EncryptionKey == "" {
		if len(c.FallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("fallback keys set without an encryption key")
		}
		return nil, nil, nil
	}
	active, err = decodeKey(c.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("encryption key: %w", err)
	}
	for i, raw := range c.FallbackKeys {
		key, err := decodeKey(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("fallback key %d: %w", i, err)
		}
		fallbacks = append(fallbacks, key)
	}
	return active, fallbacks, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func decodeKey(raw string) ([]byte, error) {
	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("not hex: %w", err)
	}
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("must be 16, 24 or 32 bytes, got %d", len(key))
	}
	return key, nil
}
