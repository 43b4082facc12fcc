package shardqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config tunes a ShardExecutor. Zero values fall back to the defaults
// applied in NewShardExecutor.
type Config struct {
	Shards         int           `envconfig:"SHARDS" default:"4"`
	QueueSize      int           `envconfig:"QUEUE_SIZE" default:"128"`
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT" default:"100ms"`
	MaxAttempts    int           `envconfig:"MAX_ATTEMPTS" default:"8"`
	BaseBackoff    time.Duration `envconfig:"BASE_BACKOFF" default:"100ms"`
	MaxInterval    time.Duration `envconfig:"MAX_INTERVAL" default:"20s"`

	// ErrorHandler, when set, receives every job error that exhausted its
	// retries or was classified irrecoverable. It must not block.
	ErrorHandler func(error) `ignored:"true"`
}

// LoadConfig reads executor settings from SQ_-prefixed environment variables
// (SQ_SHARDS, SQ_QUEUE_SIZE, SQ_ENQUEUE_TIMEOUT, ...).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("SQ", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
