// Package config loads scholia settings from defaults, an optional YAML file
// and SCHOLIA_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/scholia/internal/llm"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DB     DBConfig     `yaml:"db"`
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
	Focus  FocusConfig  `yaml:"focus"`
	LLM    LLMConfig    `yaml:"llm"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FocusConfig controls the scheduled focus digest. An empty schedule
// disables it.
type FocusConfig struct {
	DigestSchedule string `yaml:"digest_schedule"`
}

type LLMConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	MaxRetries int    `yaml:"max_retries"`
	LogCalls   bool   `yaml:"log_calls"`
}

// Default returns the configuration used when nothing is set. The database
// lives under ~/.scholia when a home directory is available.
func Default() Config {
	dbPath := "scholia.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".scholia", "scholia.db")
	}
	l := llm.DefaultConfig()
	return Config{
		DB:     DBConfig{Path: dbPath},
		Server: ServerConfig{Addr: ":8080", ReadTimeout: 15 * time.Second},
		Auth:   AuthConfig{TokenTTL: 24 * time.Hour},
		Log:    LogConfig{Level: "info", Format: "console"},
		LLM: LLMConfig{
			Enabled:    l.Enabled,
			Endpoint:   l.Endpoint,
			Model:      l.Model,
			TimeoutMs:  l.TimeoutMs,
			MaxRetries: l.MaxRetries,
			LogCalls:   l.LogCalls,
		},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply. Unknown YAML keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting, each prefixed with its key.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DB.Path) == "" {
		errs = append(errs, errors.New("db.path: must not be empty"))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr: must not be empty"))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout: must be positive"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl: must be positive"))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if c.Focus.DigestSchedule != "" {
		if _, err := cron.ParseStandard(c.Focus.DigestSchedule); err != nil {
			errs = append(errs, fmt.Errorf("focus.digest_schedule: %w", err))
		}
	}
	if c.LLM.TimeoutMs <= 0 {
		errs = append(errs, errors.New("llm.timeout_ms: must be positive"))
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, errors.New("llm.max_retries: must not be negative"))
	}
	if c.LLM.Enabled && strings.TrimSpace(c.LLM.Endpoint) == "" {
		errs = append(errs, errors.New("llm.endpoint: required when llm.enabled is true"))
	}
	return errors.Join(errs...)
}

// RequireSecret checks the settings that only the HTTP server needs.
func (c Config) RequireSecret() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret: required to serve the API (set SCHOLIA_AUTH_JWT_SECRET)")
	}
	return nil
}

// LLMSettings maps the llm section onto the client configuration, keeping
// the per-task defaults.
func (c Config) LLMSettings() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Enabled = c.LLM.Enabled
	out.Endpoint = c.LLM.Endpoint
	out.Model = c.LLM.Model
	out.TimeoutMs = c.LLM.TimeoutMs
	out.MaxRetries = c.LLM.MaxRetries
	out.LogCalls = c.LLM.LogCalls
	return out
}
