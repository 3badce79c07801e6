package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key([]byte(`{"projectDuration":3}`))
	b := Key([]byte(`{"projectDuration":3}`))
	c := Key([]byte(`{"projectDuration":4}`))

	if a != b {
		t.Errorf("identical payloads produced different keys: %s, %s", a, b)
	}
	if a == c {
		t.Errorf("different payloads produced the same key: %s", a)
	}
	if !strings.HasPrefix(a, "venture-forecast:projection:") {
		t.Errorf("key %s missing prefix", a)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		backend   string
		address   string
		expectErr bool
		check     func(Cache) bool
	}{
		{name: "Default is memory", backend: "", check: func(c Cache) bool { _, ok := c.(*Memory); return ok }},
		{name: "Memory", backend: "memory", check: func(c Cache) bool { _, ok := c.(*Memory); return ok }},
		{name: "Redis", backend: "redis", address: "localhost:6379", check: func(c Cache) bool { _, ok := c.(*Redis); return ok }},
		{name: "Redis without address", backend: "redis", expectErr: true},
		{name: "Disabled", backend: "none", check: func(c Cache) bool { _, ok := c.(Nop); return ok }},
		{name: "Unknown", backend: "memcached", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.backend, tt.address)
			if (err != nil) != tt.expectErr {
				t.Fatalf("New() error = %v, expectErr %v", err, tt.expectErr)
			}
			if err == nil && !tt.check(c) {
				t.Errorf("New() returned %T", c)
			}
			if r, ok := c.(*Redis); ok {
				_ = r.Close()
			}
		})
	}
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, _ := m.Get(ctx, "missing"); ok {
		t.Error("expected a miss for an unknown key")
	}
	if err := m.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok, _ := m.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Get() = %q, %v; expected v, true", v, ok)
	}
	_ = m.Set(ctx, "k", "v2", 0)
	if v, _, _ := m.Get(ctx, "k"); v != "v2" {
		t.Errorf("Get() after overwrite = %q, expected v2", v)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "short", "v", time.Minute)
	_ = m.Set(ctx, "forever", "v", 0)

	now = now.Add(59 * time.Second)
	if _, ok, _ := m.Get(ctx, "short"); !ok {
		t.Error("entry expired early")
	}

	now = now.Add(time.Second)
	if _, ok, _ := m.Get(ctx, "short"); ok {
		t.Error("entry should have expired")
	}
	if _, ok, _ := m.Get(ctx, "forever"); !ok {
		t.Error("entry without ttl should not expire")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, expected expired entry to be evicted", m.Len())
	}
}

func TestMemorySetEvictsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		_ = m.Set(ctx, "key-"+strconv.Itoa(i), "v", time.Minute)
	}
	_ = m.Set(ctx, "forever", "v", 0)
	if m.Len() != 1001 {
		t.Fatalf("Len() = %d, expected 1001 before expiry", m.Len())
	}

	now = now.Add(time.Hour)
	_ = m.Set(ctx, "fresh", "v", time.Minute)
	if m.Len() != 2 {
		t.Errorf("Len() = %d, expected only the fresh and non-expiring entries", m.Len())
	}

	// Within the sweep interval nothing is scanned again.
	now = now.Add(2 * time.Minute)
	_ = m.Set(ctx, "other", "v", time.Minute)
	now = now.Add(10 * time.Second)
	_ = m.Set(ctx, "another", "v", time.Minute)
	if m.Len() != 3 {
		t.Errorf("Len() = %d, expected the expired fresh entry evicted by the next sweep", m.Len())
	}
}

func TestMemoryConcurrentUse(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key([]byte{byte(i)})
			_ = m.Set(ctx, key, "v", time.Minute)
			if _, ok, _ := m.Get(ctx, key); !ok {
				t.Errorf("missing key %s", key)
			}
		}(i)
	}
	wg.Wait()

	if m.Len() != 20 {
		t.Errorf("Len() = %d, expected 20", m.Len())
	}
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Nop{}
	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Error("Nop should never return a value")
	}
}

func TestRedisUnreachable(t *testing.T) {
	// Nothing listens on port 1, so every call fails fast with a dial error.
	store := NewRedis("127.0.0.1:1")
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()
	if err := store.Ping(ctx); err == nil {
		t.Fatal("expected Ping() to fail")
	}
	_, ok, err := store.Get(ctx, "missing")
	if ok {
		t.Fatal("expected Get() miss when the server is unreachable")
	}
	if err == nil {
		t.Fatal("expected Get() to report the connection error rather than a plain miss")
	}
	if err := store.Set(ctx, "k", "v", time.Minute); err == nil {
		t.Fatal("expected Set() to fail")
	}
}
