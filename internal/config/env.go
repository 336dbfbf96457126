package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const envPrefix = "SCHOLIA_"

// applyEnv overrides settings from SCHOLIA_<SECTION>_<KEY> variables. A set
// variable that cannot be parsed is an error naming the key.
func applyEnv(cfg *Config) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, envErr(key, v, err))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, envErr(key, v, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, envErr(key, v, err))
				return
			}
			*dst = d
		}
	}

	str("DB_PATH", &cfg.DB.Path)
	str("SERVER_ADDR", &cfg.Server.Addr)
	duration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	str("AUTH_JWT_SECRET", &cfg.Auth.JWTSecret)
	duration("AUTH_TOKEN_TTL", &cfg.Auth.TokenTTL)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("FOCUS_DIGEST_SCHEDULE", &cfg.Focus.DigestSchedule)
	boolean("LLM_ENABLED", &cfg.LLM.Enabled)
	str("LLM_ENDPOINT", &cfg.LLM.Endpoint)
	str("LLM_MODEL", &cfg.LLM.Model)
	integer("LLM_TIMEOUT_MS", &cfg.LLM.TimeoutMs)
	integer("LLM_MAX_RETRIES", &cfg.LLM.MaxRetries)
	boolean("LLM_LOG_CALLS", &cfg.LLM.LogCalls)

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func envErr(key, value string, err error) error {
	return fmt.Errorf("%s%s=%q: %w", envPrefix, key, value, err)
}
