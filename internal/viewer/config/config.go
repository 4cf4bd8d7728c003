package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
)

const (
	defaultEnvFile      = ".env"
	defaultAddr         = ":8080"
	defaultBasePath     = "/"
	defaultDataDir      = "data"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultLogLevel     = "info"
	defaultCookieName   = "viewer_prefs"
	hashKeyLength       = 32
)

// Environment keys understood by Load.
const (
	EnvHTTPAddr           = "VIEWER_HTTP_ADDR"
	EnvBasePath           = "VIEWER_BASE_PATH"
	EnvDataDir            = "VIEWER_DATA_DIR"
	EnvDataWatch          = "VIEWER_DATA_WATCH"
	EnvServerReadTimeout  = "VIEWER_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout = "VIEWER_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout  = "VIEWER_SERVER_IDLE_TIMEOUT"
	EnvCookieHashKey      = "VIEWER_COOKIE_HASH_KEY"
	EnvCookieSecure       = "VIEWER_COOKIE_SECURE"
	EnvLogLevel           = "LOG_LEVEL"
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Cookie CookieConfig
	Log    LogConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DataConfig locates product snapshots.
type DataConfig struct {
	Dir   string
	Watch bool
}

// CookieConfig controls the signed filter preference cookie.
type CookieConfig struct {
	Name    string
	HashKey []byte
	Secure  bool
	// Generated is true when no hash key was configured and a random one was created.
	Generated bool
}

// LogConfig controls logging.
type LogConfig struct {
	Level string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path. An empty path disables the file.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over every other source.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file, the process environment and
// the explicit map, in increasing precedence. Unparseable values fall back to defaults.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if value, ok := dotEnvValues[key]; ok {
			return value, true
		}
		return "", false
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:         stringWithDefault(lookup, EnvHTTPAddr, defaultAddr),
			BasePath:     stringWithDefault(lookup, EnvBasePath, defaultBasePath),
			ReadTimeout:  durationWithDefault(lookup, EnvServerReadTimeout, defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, EnvServerWriteTimeout, defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, EnvServerIdleTimeout, defaultIdleTimeout),
		},
		Data: DataConfig{
			Dir:   stringWithDefault(lookup, EnvDataDir, defaultDataDir),
			Watch: boolWithDefault(lookup, EnvDataWatch, false),
		},
		Cookie: CookieConfig{
			Name:   defaultCookieName,
			Secure: boolWithDefault(lookup, EnvCookieSecure, false),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, EnvLogLevel, defaultLogLevel)),
		},
	}

	if key := strings.TrimSpace(stringWithDefault(lookup, EnvCookieHashKey, "")); key != "" {
		cfg.Cookie.HashKey = []byte(key)
	} else {
		cfg.Cookie.HashKey = securecookie.GenerateRandomKey(hashKeyLength)
		cfg.Cookie.Generated = true
		if cfg.Cookie.HashKey == nil {
			return Config{}, errors.New("config: unable to generate cookie hash key")
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports empty or non-positive required fields.
func (c Config) Validate() error {
	var missing []string

	if strings.TrimSpace(c.Server.Addr) == "" {
		missing = append(missing, "Server.Addr")
	}
	if strings.TrimSpace(c.Data.Dir) == "" {
		missing = append(missing, "Data.Dir")
	}
	if c.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if c.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if c.Server.IdleTimeout <= 0 {
		missing = append(missing, "Server.IdleTimeout")
	}
	if len(c.Cookie.HashKey) == 0 {
		missing = append(missing, "Cookie.HashKey")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	values, err := godotenv.Read(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
