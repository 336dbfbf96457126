package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scholia.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.LLM.Enabled)
	assert.Empty(t, cfg.Focus.DigestSchedule)
	assert.Error(t, cfg.RequireSecret())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
db:
  path: /tmp/research.db
server:
  addr: ":9090"
  read_timeout: 5s
auth:
  jwt_secret: from-file
  token_ttl: 2h
log:
  level: debug
  format: json
focus:
  digest_schedule: "0 8 * * 1-5"
llm:
  enabled: true
  model: mistral
  timeout_ms: 2000
`)
	t.Setenv("SCHOLIA_AUTH_JWT_SECRET", "from-env")
	t.Setenv("SCHOLIA_LLM_MAX_RETRIES", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/research.db", cfg.DB.Path)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "0 8 * * 1-5", cfg.Focus.DigestSchedule)
	assert.NoError(t, cfg.RequireSecret())

	l := cfg.LLMSettings()
	assert.True(t, l.Enabled)
	assert.Equal(t, "mistral", l.Model)
	assert.Equal(t, "http://localhost:11434", l.Endpoint)
	assert.Equal(t, 2000, l.TimeoutMs)
	assert.Equal(t, 3, l.MaxRetries)
	assert.Equal(t, 30000, l.TaskTimeout("plan"))
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "server:\n  adress: \":80\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adress")
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadEnvNamesKey(t *testing.T) {
	t.Setenv("SCHOLIA_LLM_TIMEOUT_MS", "soon")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHOLIA_LLM_TIMEOUT_MS")
}

func TestValidate_NamesOffendingKeys(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Focus.DigestSchedule = "every morning"
	cfg.LLM.MaxRetries = -1
	cfg.LLM.Enabled = true
	cfg.LLM.Endpoint = ""

	err := cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{"log.level", "focus.digest_schedule", "llm.max_retries", "llm.endpoint"} {
		assert.Contains(t, err.Error(), key)
	}
}
