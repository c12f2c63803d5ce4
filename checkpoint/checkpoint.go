// Package checkpoint persists the event cursor of the relay service so that a restarted
// orchestrator resumes scanning where it stopped instead of at the chain head.
//
// Every backend refuses to move a stored cursor backwards.
package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/peggy-bridge/orchestrator/core"
)

// ErrRegression is returned by Save when the stored height is above the given one
var ErrRegression = errors.New("checkpoint would move backwards")

// Store is a persistent key -> height map
type Store interface {
	// Load returns the stored height of key. found is false if nothing was stored yet.
	Load(ctx context.Context, key string) (height uint64, found bool, err error)
	// Save stores height under key unless a greater height is already stored
	Save(ctx context.Context, key string, height uint64) error
	Close() error
}

var _ core.Checkpoint = Store(nil)

const (
	TypeNone     = "none"
	TypeLevelDB  = "leveldb"
	TypePostgres = "postgres"
	TypeRedis    = "redis"
)

// Config is the `checkpoint` section of the config file
type Config struct {
	Type string `mapstructure:"type" json:"type" yaml:"type"`

	// leveldb: database directory, relative paths are resolved against the home directory
	Path string `mapstructure:"path" json:"path,omitempty" yaml:"path,omitempty"`

	// postgres
	DSN string `mapstructure:"dsn" json:"dsn,omitempty" yaml:"dsn,omitempty"`

	// redis
	RedisAddr     string `mapstructure:"redis_addr" json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPassword string `mapstructure:"redis_password" json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int    `mapstructure:"redis_db" json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
}

func DefaultConfig() Config {
	return Config{Type: TypeLevelDB}
}

func (c Config) Validate() error {
	switch c.Type {
	case "", TypeNone, TypeLevelDB:
		return nil
	case TypePostgres:
		if c.DSN == "" {
			return fmt.Errorf("config attribute \"dsn\" is empty")
		}
	case TypeRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config attribute \"redis_addr\" is empty")
		}
	default:
		return fmt.Errorf("config attribute \"type\" is unexpected: %q", c.Type)
	}
	return nil
}

func (c Config) dir(homePath string) string {
	switch {
	case c.Path == "":
		return filepath.Join(homePath, "data")
	case filepath.IsAbs(c.Path):
		return c.Path
	default:
		return filepath.Join(homePath, c.Path)
	}
}

// Open connects to the configured backend. It returns a nil Store when checkpointing is disabled.
// The leveldb database lives in homePath/data unless a path is configured.
func (c Config) Open(ctx context.Context, homePath string) (Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Type {
	case "", TypeNone:
		return nil, nil
	case TypeLevelDB:
		return OpenLevelDB(c.dir(homePath))
	case TypePostgres:
		return OpenPostgres(ctx, c.DSN)
	case TypeRedis:
		return OpenRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
	}
	return nil, fmt.Errorf("unknown checkpoint type: %q", c.Type)
}
