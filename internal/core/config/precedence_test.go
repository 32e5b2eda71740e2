package config

import (
	"os"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

// TestPrecedence verifies file < environment ordering.
func TestPrecedence(t *testing.T) {
	t.Run("config file values are read", func(t *testing.T) {
		path := writeConfig(t, `server:
  host: "localhost"
  port: 8080
  request_timeout: 5s
limits:
  max_records_per_set: 500
data:
  catalog: ./fonts.yaml
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig error: %v", err)
		}
		if cfg.Host != "localhost" || cfg.Port != 8080 {
			t.Errorf("expected localhost:8080, got %s:%d", cfg.Host, cfg.Port)
		}
		if cfg.RequestTimeout.Seconds() != 5 {
			t.Errorf("expected timeout 5s, got %v", cfg.RequestTimeout)
		}
		if cfg.MaxRecordsPerSet != 500 {
			t.Errorf("expected max_records_per_set 500, got %d", cfg.MaxRecordsPerSet)
		}
		if cfg.Catalog != "./fonts.yaml" {
			t.Errorf("expected catalog ./fonts.yaml, got %s", cfg.Catalog)
		}
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		os.Setenv("FF_SERVER_PORT", "8080")
		defer os.Unsetenv("FF_SERVER_PORT")

		path := writeConfig(t, `server:
  port: 9090
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig error: %v", err)
		}
		// Environment variable (8080) should override config file (9090)
		if cfg.Port != 8080 {
			t.Fatalf("Environment should override config file. Expected 8080, got %d", cfg.Port)
		}
	})
}

func TestSecretsRejectedInConfigFile(t *testing.T) {
	path := writeConfig(t, `server:
  port: 8080
  api_key: "should_be_rejected"
`)
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for api_key in config file")
	}
	if err.Error() != "API keys not allowed in config files (use FF_API_KEY environment variable)" {
		t.Fatalf("wrong error message: %v", err)
	}
}

func TestAPIKey(t *testing.T) {
	os.Setenv("FF_API_KEY", "  s3cret ")
	defer os.Unsetenv("FF_API_KEY")

	if got := APIKey(); got != "s3cret" {
		t.Errorf("expected s3cret, got %q", got)
	}
}
