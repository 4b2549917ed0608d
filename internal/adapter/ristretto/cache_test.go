package ristretto_test

import (
	"context"
	"testing"
	"time"

	"github.com/onboardhq/manuald/internal/adapter/ristretto"
	"github.com/onboardhq/manuald/internal/port/cache/cachetest"
)

func TestCacheCompliance(t *testing.T) {
	c, err := ristretto.New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	cachetest.RunComplianceTests(t, c)
}

func TestCacheTTLExpiry(t *testing.T) {
	c, err := ristretto.New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "ttl-key", []byte("v"), 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}

	if _, found, _ := c.Get(ctx, "ttl-key"); !found {
		t.Fatal("expected hit before TTL expiry")
	}

	time.Sleep(100 * time.Millisecond)

	if _, found, _ := c.Get(ctx, "ttl-key"); found {
		t.Fatal("expected miss after TTL expiry")
	}
}
