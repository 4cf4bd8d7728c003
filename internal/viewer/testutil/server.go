package testutil

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"finitefield.org/product-viewer/internal/viewer/catalog"
	"finitefield.org/product-viewer/internal/viewer/httpserver"
	"finitefield.org/product-viewer/internal/viewer/httpserver/middleware"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath sets a custom base path for the viewer routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithDataDir points the server at a snapshot directory.
func WithDataDir(dir string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.DataDir = dir
	}
}

// WithSession wires a custom snapshot session.
func WithSession(session *catalog.Session) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Session = session
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// NewServer constructs an httptest server running the viewer HTTP stack with an empty data
// directory by default.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:  ":0",
		BasePath: "/",
		DataDir:  t.TempDir(),
		Preferences: middleware.PreferencesConfig{
			HashKey: []byte("12345678901234567890123456789012"),
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Session == nil {
		cfg.Session = catalog.NewSession(catalog.NewLoader(catalog.WithLogger(cfg.Logger)))
	}

	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// WriteSnapshot writes a snapshot file named all_products_<suffix>.json into dir.
func WriteSnapshot(t testing.TB, dir, suffix, body string) string {
	t.Helper()

	path := filepath.Join(dir, "all_products_"+suffix+".json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}
