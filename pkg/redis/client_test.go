package redis

import (
	"context"
	"testing"
	"time"

	"github.com/hireloop/interview-api/config"
)

func TestDisabledClientIsNoOp(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Enabled = false

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.IsEnabled() {
		t.Error("client should report disabled")
	}

	ctx := context.Background()

	if err := client.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Errorf("Set() error = %v", err)
	}

	value, found, err := client.Get(ctx, "k")
	if err != nil {
		t.Errorf("Get() error = %v", err)
	}
	if found || value != "" {
		t.Errorf("Get() = (%q, %v), disabled client must always miss", value, found)
	}

	if err := client.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := client.DeleteByPattern(ctx, "k*"); err != nil {
		t.Errorf("DeleteByPattern() error = %v", err)
	}
	if err := client.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
