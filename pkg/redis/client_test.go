package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/angelmondragon/foodcart/pkg/config"
	"github.com/angelmondragon/foodcart/pkg/logger"
)

func setupTestRedis(t *testing.T, namespace string) (*miniredis.Miniredis, *Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), config.RedisConfig{Address: mr.Addr()}, namespace, logger.Nop())
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	mr, client := setupTestRedis(t, "fc")

	key := client.SessionKey("sess-1", "foodCart")
	if err := client.Set(ctx, key, []byte(`[]`), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "[]" {
		t.Fatalf("expected stored value, got %q", got)
	}
	if raw, _ := mr.Get("fc:session:sess-1:foodCart"); raw != "[]" {
		t.Fatalf("unexpected raw value %q", raw)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); !errors.Is(err, ErrNil) {
		t.Fatalf("expected ErrNil after delete, got %v", err)
	}
}

func TestWriteFailurePropagates(t *testing.T) {
	mr, client := setupTestRedis(t, "")
	mr.SetError("OOM command not allowed")

	if err := client.Set(context.Background(), "k", "v", time.Minute); err == nil {
		t.Fatal("expected write failure")
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.SessionKey("abc", "foodOrders"); got != "fc:session:abc:foodOrders" {
		t.Fatalf("unexpected session key %s", got)
	}
	if got := client.SessionKey(" ", "foodOrders"); got != "fc:session:foodOrders" {
		t.Fatalf("blank parts should be skipped, got %s", got)
	}

	_, named := setupTestRedis(t, "shop")
	if got := named.SessionKey("abc", "foodCart"); got != "shop:session:abc:foodCart" {
		t.Fatalf("unexpected namespaced key %s", got)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil raw should be a no-op: %v", err)
	}
}

func TestNewFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.RedisConfig{Address: addr, DialTimeout: 100 * time.Millisecond}
	if _, err := New(context.Background(), cfg, "fc", nil); err == nil {
		t.Fatal("expected ping failure against a closed server")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 2, PoolSize: 7, DialTimeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 2 || opts.PoolSize != 7 || opts.DialTimeout != time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6380/3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" || opts.DB != 3 {
		t.Fatalf("unexpected parsed options %+v", opts)
	}
}
