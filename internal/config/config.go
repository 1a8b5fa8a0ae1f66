package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "FINCAST_"

// Config holds application configuration
type Config struct {
	// Server settings
	ListenAddr string `toml:"listen_addr" validate:"required"`
	Debug      bool   `toml:"debug"`
	LogLevel   string `toml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`

	// Prediction backend. Empty runs from the offline snapshot.
	BackendURL        string        `toml:"backend_url" validate:"omitempty,url"`
	SnapshotTimeout   time.Duration `toml:"snapshot_timeout" validate:"gt=0"`
	PredictionTimeout time.Duration `toml:"prediction_timeout" validate:"gt=0"`

	// PageTTL is how long an idle page keeps its server-side state
	PageTTL time.Duration `toml:"page_ttl" validate:"gte=0"`

	// Directories
	DataDirectory      string `toml:"data_directory" validate:"required"`
	TemplatesDirectory string `toml:"templates_directory" validate:"required"`
	StaticDirectory    string `toml:"static_directory" validate:"required"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return &Config{
		ListenAddr:         ":8080",
		LogLevel:           "info",
		SnapshotTimeout:    10 * time.Second,
		PredictionTimeout:  120 * time.Second,
		PageTTL:            2 * time.Hour,
		DataDirectory:      filepath.Join(wd, "data"),
		TemplatesDirectory: filepath.Join(wd, "web", "templates"),
		StaticDirectory:    filepath.Join(wd, "web", "static"),
	}
}

// Load builds the configuration. Later sources win: defaults, the TOML file
// at configFile, the dotenv file at envFile, then FINCAST_* variables
// already in the environment. Missing files are skipped.
func Load(configFile, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if configFile != "" {
		if _, err := toml.DecodeFile(configFile, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: parsing %s: %w", configFile, err)
		}
	}

	if envFile != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: loading %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Offline reports whether the dashboard runs without a prediction backend
func (c *Config) Offline() bool {
	return c.BackendURL == ""
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	dur := func(name string, dst *time.Duration) error {
		v := getenv(EnvPrefix + name)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = d
		return nil
	}

	str("LISTEN_ADDR", &c.ListenAddr)
	str("LOG_LEVEL", &c.LogLevel)
	str("BACKEND_URL", &c.BackendURL)
	str("DATA_DIR", &c.DataDirectory)
	str("TEMPLATES_DIR", &c.TemplatesDirectory)
	str("STATIC_DIR", &c.StaticDirectory)

	if v := getenv(EnvPrefix + "DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sDEBUG: %w", EnvPrefix, err)
		}
		c.Debug = b
	}

	for name, dst := range map[string]*time.Duration{
		"SNAPSHOT_TIMEOUT":   &c.SnapshotTimeout,
		"PREDICTION_TIMEOUT": &c.PredictionTimeout,
		"PAGE_TTL":           &c.PageTTL,
	} {
		if err := dur(name, dst); err != nil {
			return err
		}
	}
	return nil
}

// WriteTimeout is the server write deadline, long enough for a prediction
// to finish and its partial to be written.
func (c *Config) WriteTimeout() time.Duration {
	return c.PredictionTimeout + 10*time.Second
}
