package ratelimitport

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"gitlab.com/hirecode-2025.net/internal/adapter/logging"
)

func TestIncrementWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	counter := NewRequestCounter(client, logging.NewNopLogger())
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Increment(ctx, "10.0.0.1", time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("count = %d, want %d", got, want)
		}
	}

	if ttl := mr.TTL("ratelimit:10.0.0.1"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v, want within one minute", ttl)
	}

	other, err := counter.Increment(ctx, "10.0.0.2", time.Minute)
	if err != nil || other != 1 {
		t.Fatalf("other client count = %d, %v", other, err)
	}

	mr.FastForward(61 * time.Second)

	got, err := counter.Increment(ctx, "10.0.0.1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("count after window = %d, want 1", got)
	}
}

func TestIncrementRearmsKeyWithoutExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	// a counter left behind without a TTL, as a crash between INCR and PEXPIRE would
	if err := mr.Set("ratelimit:1.2.3.4", "25"); err != nil {
		t.Fatal(err)
	}

	counter := NewRequestCounter(client, logging.NewNopLogger())
	ctx := context.Background()

	got, err := counter.Increment(ctx, "1.2.3.4", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if got != 26 {
		t.Fatalf("count = %d, want 26", got)
	}
	if ttl := mr.TTL("ratelimit:1.2.3.4"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v, want within one minute", ttl)
	}

	mr.FastForward(24 * time.Hour)

	got, err = counter.Increment(ctx, "1.2.3.4", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("count after window = %d, want 1", got)
	}
}

func TestIncrementKeepsRunningWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	counter := NewRequestCounter(client, logging.NewNopLogger())
	ctx := context.Background()

	if _, err := counter.Increment(ctx, "10.0.0.1", time.Minute); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(40 * time.Second)
	if _, err := counter.Increment(ctx, "10.0.0.1", time.Minute); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("ratelimit:10.0.0.1"); ttl > 20*time.Second {
		t.Fatalf("ttl = %v, window was extended", ttl)
	}
}

func TestIncrementRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	counter := NewRequestCounter(client, logging.NewNopLogger())
	if _, err := counter.Increment(context.Background(), "x", time.Minute); err == nil {
		t.Fatal("expected error when redis is unavailable")
	}
}
