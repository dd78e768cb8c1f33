package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisAddr returns the server used by integration tests, skipping when
// BISECT_TEST_REDIS is unset.
func redisAddr(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("BISECT_TEST_REDIS")
	if addr == "" {
		t.Skip("BISECT_TEST_REDIS not set")
	}
	return addr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: redisAddr(t), Prefix: "bisect-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	t.Cleanup(func() { _ = c.Clear(ctx) })

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get on empty = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Clear should remove prefixed keys")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Port 1 on loopback refuses connections.
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("nil should stay nil")
	}
	if err := classify(redis.Nil); !errors.Is(err, redis.Nil) || IsRetryable(err) {
		t.Errorf("redis.Nil = %v", err)
	}

	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := classify(opErr)
	if !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("net error should be retryable ErrNetwork: %v", err)
	}

	if err := classify(redis.ErrClosed); !errors.Is(err, ErrClosed) || IsRetryable(err) {
		t.Errorf("closed client = %v", err)
	}
}

func TestRedisCacheClearClassifiesErrors(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := &RedisCache{client: client, prefix: "bisect-test:"}
	if err := client.Close(); err != nil {
		t.Fatal(err)
	}

	if err := c.Clear(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Clear on closed client = %v, want ErrClosed", err)
	}
	if err := c.del(ctx, []string{"bisect-test:k"}); !errors.Is(err, ErrClosed) {
		t.Errorf("del on closed client = %v, want ErrClosed", err)
	}
	if err := c.del(ctx, nil); err != nil {
		t.Errorf("del with no keys = %v", err)
	}
}

func TestRedisCacheClearUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	c := &RedisCache{client: client, prefix: "bisect-test:"}
	defer c.Close()

	if err := c.Clear(ctx); !errors.Is(err, ErrNetwork) {
		t.Errorf("Clear against unreachable server = %v, want ErrNetwork", err)
	}
}
