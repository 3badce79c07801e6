package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/venture-forecast/pkg/cache"
	"github.com/iwvelando/venture-forecast/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address == "" {
		t.Fatalf("expected default address, got empty")
	}
	if cfg.UploadSizeBytes() <= 0 {
		t.Fatalf("expected positive default max upload size, got %d", cfg.UploadSizeBytes())
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
	if cfg.Cache.Backend != constants.DefaultCacheBackend {
		t.Fatalf("expected default cache backend, got %q", cfg.Cache.Backend)
	}
	if cfg.CacheTTL() != 10*time.Minute {
		t.Fatalf("expected default cache ttl of 10m, got %s", cfg.CacheTTL())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxUploadSize: 2M
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
cache:
  backend: Redis
  redisAddress: localhost:6379
  ttl: 90s
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max upload override, got %d", cfg.UploadSizeBytes())
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected logging format console, got %s", cfg.Logging.Format)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging outputFile /tmp/server.log, got %s", cfg.Logging.OutputFile)
	}
	if cfg.Cache.Backend != "redis" {
		t.Fatalf("expected cache backend redis, got %s", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddress != "localhost:6379" {
		t.Fatalf("expected redis address override, got %s", cfg.Cache.RedisAddress)
	}
	if cfg.CacheTTL() != 90*time.Second {
		t.Fatalf("expected cache ttl 90s, got %s", cfg.CacheTTL())
	}
}

func TestLoadConfigCacheErrors(t *testing.T) {
	tests := map[string]string{
		"unknown backend": "cache:\n  backend: memcached\n",
		"redis no addr":   "cache:\n  backend: redis\n",
		"bad ttl":         "cache:\n  ttl: soon\n",
		"negative ttl":    "cache:\n  ttl: -1m\n",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "server-config.yaml")
			if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("expected error but got nil")
			}
		})
	}
}

func TestConfigNewCache(t *testing.T) {
	cfg := DefaultConfig()
	store, err := cfg.NewCache()
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	if _, ok := store.(*cache.Memory); !ok {
		t.Fatalf("expected memory cache by default, got %T", store)
	}

	cfg.Cache.Backend = cache.BackendNone
	store, err = cfg.NewCache()
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}
	if _, ok := store.(cache.Nop); !ok {
		t.Fatalf("expected no-op cache, got %T", store)
	}
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("maxUploadSize: invalid"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid YAML but got nil")
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxUploadSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"2G":        2 * 1024 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("parseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("parseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	if _, err := ParseSize("1TB"); err == nil {
		t.Fatal("expected error for unsupported unit")
	}
	if _, err := ParseSize("abc"); err == nil {
		t.Fatal("expected error for invalid number")
	}
	if _, err := ParseSize("-5MB"); err == nil {
		t.Fatal("expected error for negative size")
	}

	// Products that wrap past MaxInt64 back to a positive number must still fail.
	for _, input := range []string{"9999999999999G", "17179869185G", "9007199254740993K", "8796093022209M"} {
		if got, err := ParseSize(input); err == nil {
			t.Errorf("ParseSize(%q) = %d, expected overflow error", input, got)
		}
	}
	if got, err := ParseSize("8589934591G"); err != nil || got != 8589934591*1024*1024*1024 {
		t.Errorf("ParseSize(largest G) = %d, %v", got, err)
	}
}
