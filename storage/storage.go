// Package storage holds the small durable key-value stores the back office
// keeps outside the entity store, such as the running service-order timers.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Read when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KV is a durable byte store addressed by key.
type KV interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

// Config selects and configures a KV driver.
type Config struct {
	Driver string // memory, diskv, redis

	// diskv
	Path string

	// redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// New creates a KV driver based on configuration.
func New(cfg Config) (KV, error) {
	switch cfg.Driver {
	case "diskv", "":
		path := cfg.Path
		if path == "" {
			path = "./data/kv"
		}
		return NewDiskv(path), nil

	case "memory":
		return NewMemory(), nil

	case "redis":
		return NewRedis(cfg)

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
