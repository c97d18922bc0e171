package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("SECRET", "")
	t.Setenv("CRON_JOBS", "")
	path := writeFile(t, "webcron.yaml", `
secret: s3cr3t
jobs: |
  GET|http://example/ping|0 * * * * *||
logging:
  level: debug
dispatch:
  timeout: 10s
  max_per_sec: 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Secret != "s3cr3t" {
		t.Errorf("Secret = %q", cfg.Secret)
	}
	if len(cfg.JobList) != 1 {
		t.Fatalf("JobList len = %d, want 1", len(cfg.JobList))
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	d, err := cfg.RequestTimeout()
	if err != nil {
		t.Fatal(err)
	}
	if d != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", d)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("SECRET", "")
	t.Setenv("CRON_JOBS", "")
	path := writeFile(t, "webcron.yaml", `
secret: x
jobs: "GET|http://example/|* * * * * *"
retries: 3
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown config key")
	}
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("SECRET", "s3cr3t")
	t.Setenv("CRON_JOBS", "GET|http://example/ping|0 * * * * *||")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Secret != "s3cr3t" || len(cfg.JobList) != 1 {
		t.Fatalf("env-only load produced %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "webcron.yaml", `
secret: from-file
jobs: "GET|http://file.example/|* * * * * *"
`)
	t.Setenv("SECRET", "from-env")
	t.Setenv("CRON_JOBS", "HEAD|http://env.example/|0 * * * * *")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Secret != "from-env" {
		t.Errorf("Secret = %q, want from-env", cfg.Secret)
	}
	if cfg.JobList[0].URL != "http://env.example/" {
		t.Errorf("job URL = %q, want env job", cfg.JobList[0].URL)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("SECRET", "")
	t.Setenv("CRON_JOBS", "GET|http://example/|* * * * * *")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestLoadBadJobIsFatal(t *testing.T) {
	t.Setenv("SECRET", "x")
	t.Setenv("CRON_JOBS", "GET|http://a.example/|* * * * * *;GET|http://b.example/|bad cron here")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error: one malformed entry must fail the whole load")
	}
}

func TestLoadEmptyJobListIsFatal(t *testing.T) {
	t.Setenv("SECRET", "x")
	t.Setenv("CRON_JOBS", " ; ")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty job list")
	}
}
