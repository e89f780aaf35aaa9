package envstruct_test

import (
	"errors"
	"testing"

	"github.com/myrjola/pulsecoach/internal/envstruct"
)

func lookupFromMap(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

func TestPopulate(t *testing.T) {
	type config struct {
		Addr      string `env:"TEST_ADDR" envDefault:"localhost:0"`
		SqliteURL string `env:"TEST_SQLITE_URL"`
		Ignored   string
	}

	t.Run("values from environment", func(t *testing.T) {
		var cfg config
		err := envstruct.Populate(&cfg, lookupFromMap(map[string]string{
			"TEST_ADDR":       "localhost:8080",
			"TEST_SQLITE_URL": ":memory:",
		}))
		if err != nil {
			t.Fatalf("Populate() error = %v", err)
		}
		if cfg.Addr != "localhost:8080" {
			t.Errorf("Addr = %q, want %q", cfg.Addr, "localhost:8080")
		}
		if cfg.SqliteURL != ":memory:" {
			t.Errorf("SqliteURL = %q, want %q", cfg.SqliteURL, ":memory:")
		}
	})

	t.Run("default applies when unset", func(t *testing.T) {
		var cfg config
		err := envstruct.Populate(&cfg, lookupFromMap(map[string]string{
			"TEST_SQLITE_URL": ":memory:",
		}))
		if err != nil {
			t.Fatalf("Populate() error = %v", err)
		}
		if cfg.Addr != "localhost:0" {
			t.Errorf("Addr = %q, want default %q", cfg.Addr, "localhost:0")
		}
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg config
		err := envstruct.Populate(&cfg, lookupFromMap(nil))
		if !errors.Is(err, envstruct.ErrEnvNotSet) {
			t.Errorf("Populate() error = %v, want ErrEnvNotSet", err)
		}
	})

	t.Run("non-pointer argument", func(t *testing.T) {
		var cfg config
		if err := envstruct.Populate(cfg, lookupFromMap(nil)); err == nil {
			t.Error("Populate() expected error for non-pointer argument")
		}
	})
}
