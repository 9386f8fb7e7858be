package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = "4017"
	DefaultDatasetPath = "data/garments.json"
	DefaultJWTSecret   = "dev-secret"
	DefaultPublicDir   = "public"
	DefaultTokenTTL    = 24 * time.Hour
	DefaultLoginLimit  = 10
)

type Config struct {
	Port        string
	DatasetPath string
	// DatasetDSN, when set, seeds the catalog from PostgreSQL instead of
	// DatasetPath.
	DatasetDSN string

	JWTSecret        string
	TokenTTL         time.Duration
	LoginLimitPerMin int

	PublicDir      string
	MetricsEnabled bool
	MetricsToken   string
	LogLevel       string
}

// Load reads the process environment. Variables from the file named by
// ENV_FILE (default ".env") fill in anything not already set; a missing file
// is not an error.
func Load() (Config, error) {
	envFile := getenv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		Port:         strings.TrimPrefix(getenv("PORT", DefaultPort), ":"),
		DatasetPath:  getenv("DATASET_PATH", DefaultDatasetPath),
		DatasetDSN:   getenv("DATASET_DSN", ""),
		JWTSecret:    getenv("JWT_SECRET", DefaultJWTSecret),
		PublicDir:    getenv("PUBLIC_DIR", DefaultPublicDir),
		MetricsToken: getenv("METRICS_TOKEN", ""),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", DefaultTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.LoginLimitPerMin, err = intEnv("LOGIN_LIMIT_PER_MIN", DefaultLoginLimit); err != nil {
		return Config{}, err
	}
	if cfg.MetricsEnabled, err = boolEnv("METRICS_ENABLED", false); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.DatasetPath == "" && c.DatasetDSN == "" {
		return errors.New("one of DATASET_PATH or DATASET_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.LoginLimitPerMin <= 0 {
		return errors.New("LOGIN_LIMIT_PER_MIN must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := getenv(k, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}

func intEnv(k string, def int) (int, error) {
	v := getenv(k, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

func boolEnv(k string, def bool) (bool, error) {
	v := getenv(k, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", k, err)
	}
	return b, nil
}
