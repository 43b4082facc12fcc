package shardqueue

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Shards != 4 || cfg.QueueSize != 128 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.EnqueueTimeout != 100*time.Millisecond {
		t.Fatalf("EnqueueTimeout = %v", cfg.EnqueueTimeout)
	}
	if cfg.MaxAttempts != 8 || cfg.BaseBackoff != 100*time.Millisecond || cfg.MaxInterval != 20*time.Second {
		t.Fatalf("retry defaults = %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SQ_SHARDS", "2")
	t.Setenv("SQ_QUEUE_SIZE", "16")
	t.Setenv("SQ_ENQUEUE_TIMEOUT", "250ms")
	t.Setenv("SQ_MAX_ATTEMPTS", "3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Shards != 2 || cfg.QueueSize != 16 || cfg.MaxAttempts != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.EnqueueTimeout != 250*time.Millisecond {
		t.Fatalf("EnqueueTimeout = %v", cfg.EnqueueTimeout)
	}
}
