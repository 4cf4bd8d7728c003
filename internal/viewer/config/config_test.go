package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != defaultAddr {
		t.Errorf("expected default addr %s, got %s", defaultAddr, cfg.Server.Addr)
	}
	if cfg.Server.BasePath != "/" {
		t.Errorf("expected default base path, got %s", cfg.Server.BasePath)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("unexpected write timeout: %s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.IdleTimeout != 60*time.Second {
		t.Errorf("unexpected idle timeout: %s", cfg.Server.IdleTimeout)
	}
	if cfg.Data.Dir != "data" {
		t.Errorf("expected default data dir, got %s", cfg.Data.Dir)
	}
	if cfg.Data.Watch {
		t.Errorf("expected watcher to be off by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected info log level, got %s", cfg.Log.Level)
	}
	if !cfg.Cookie.Generated || len(cfg.Cookie.HashKey) != hashKeyLength {
		t.Errorf("expected a generated %d byte hash key, got %d bytes", hashKeyLength, len(cfg.Cookie.HashKey))
	}
	if cfg.Cookie.Secure {
		t.Errorf("expected insecure cookie by default")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		EnvHTTPAddr:           "127.0.0.1:9000",
		EnvBasePath:           "/catalog",
		EnvDataDir:            "/srv/snapshots",
		EnvDataWatch:          "yes",
		EnvServerReadTimeout:  "5s",
		EnvServerWriteTimeout: "1m",
		EnvServerIdleTimeout:  "2m",
		EnvCookieHashKey:      "0123456789abcdef0123456789abcdef",
		EnvCookieSecure:       "true",
		EnvLogLevel:           "DEBUG",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.BasePath != "/catalog" {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 5*time.Second || cfg.Server.WriteTimeout != time.Minute || cfg.Server.IdleTimeout != 2*time.Minute {
		t.Errorf("unexpected timeouts: %+v", cfg.Server)
	}
	if cfg.Data.Dir != "/srv/snapshots" || !cfg.Data.Watch {
		t.Errorf("unexpected data config: %+v", cfg.Data)
	}
	if string(cfg.Cookie.HashKey) != env[EnvCookieHashKey] || cfg.Cookie.Generated || !cfg.Cookie.Secure {
		t.Errorf("unexpected cookie config: %+v", cfg.Cookie)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected lowercased log level, got %s", cfg.Log.Level)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	env := map[string]string{
		EnvServerReadTimeout: "soon",
		EnvServerIdleTimeout: "-5s",
		EnvDataWatch:         "maybe",
		EnvDataDir:           "   ",
	}

	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.ReadTimeout != defaultReadTimeout {
		t.Errorf("expected default read timeout, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.IdleTimeout != defaultIdleTimeout {
		t.Errorf("expected default idle timeout, got %s", cfg.Server.IdleTimeout)
	}
	if cfg.Data.Watch {
		t.Errorf("expected watch to stay off")
	}
	if cfg.Data.Dir != defaultDataDir {
		t.Errorf("expected default data dir, got %q", cfg.Data.Dir)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "VIEWER_DATA_DIR=from-file\nVIEWER_HTTP_ADDR=\":7000\"\n# comment\nexport LOG_LEVEL=warn\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(EnvHTTPAddr, ":7100")

	cfg, err := Load(WithEnvFile(envFile), WithEnvMap(map[string]string{EnvLogLevel: "error"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Data.Dir != "from-file" {
		t.Errorf("expected value from .env, got %s", cfg.Data.Dir)
	}
	if cfg.Server.Addr != ":7100" {
		t.Errorf("expected system env to override .env, got %s", cfg.Server.Addr)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected explicit map to win, got %s", cfg.Log.Level)
	}
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "missing.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}

func TestValidateReportsFields(t *testing.T) {
	err := Config{}.Validate()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]bool{
		"Server.Addr":         true,
		"Data.Dir":            true,
		"Server.ReadTimeout":  true,
		"Server.WriteTimeout": true,
		"Server.IdleTimeout":  true,
		"Cookie.HashKey":      true,
	}
	fields := validationErr.Fields()
	if len(fields) != len(want) {
		t.Fatalf("unexpected fields: %v", fields)
	}
	for _, field := range fields {
		if !want[field] {
			t.Errorf("unexpected field %s", field)
		}
	}
}
