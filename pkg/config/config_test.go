package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalYAML = `
environment: test
series:
  fred: [DGS10, DGS2]
  nyfed_tp10: true
tiles:
  y10_green_max: 0.045
  y10_yellow_max: 0.050
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Fetch.Attempts != 2 {
		t.Errorf("default attempts = %d, want 2", cfg.Fetch.Attempts)
	}
	if cfg.Fetch.RetryDelay != time.Second {
		t.Errorf("default retry delay = %v, want 1s", cfg.Fetch.RetryDelay)
	}
	if cfg.Fetch.MaxConcurrency != 4 {
		t.Errorf("default max concurrency = %d, want 4", cfg.Fetch.MaxConcurrency)
	}
	if cfg.Fetch.CacheTTL != 15*time.Minute {
		t.Errorf("default cache TTL = %v, want 15m", cfg.Fetch.CacheTTL)
	}
	if !cfg.Series.NYFedTP10 {
		t.Error("nyfed_tp10 not parsed")
	}
	if cfg.Tiles.Y10GreenMax != 0.045 {
		t.Errorf("threshold = %v, want 0.045", cfg.Tiles.Y10GreenMax)
	}
}

func TestLoadRejectsEmptySeries(t *testing.T) {
	body := `
environment: test
series:
  fred: []
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Error("empty series list must fail validation")
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	body := `
series:
  fred: [DGS10]
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Error("missing environment must fail validation")
	}
}

func TestLoadRejectsAttemptsOutOfRange(t *testing.T) {
	body := `
environment: test
series:
  fred: [DGS10]
fetch:
  attempts: 5
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Error("attempts above 3 must fail validation")
	}
}

func TestLoadWithEnvOverridesSeries(t *testing.T) {
	t.Setenv("SERIES", "DGS10,NAPM,DCOILWTICO")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Series.Fred) != 3 || cfg.Series.Fred[1] != "NAPM" {
		t.Errorf("series = %v, want env override", cfg.Series.Fred)
	}
}

func TestLoadWithEnvEnablesRedis(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PASSWORD", "s3cret")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Cache.Redis.Enabled || cfg.Cache.Redis.Host != "cache.internal" {
		t.Errorf("redis config = %+v, want enabled via env", cfg.Cache.Redis)
	}
	if cfg.Cache.Redis.Password != "s3cret" {
		t.Error("redis password not taken from env")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file must be an error")
	}
}
