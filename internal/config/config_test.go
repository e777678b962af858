package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for the test so Load sees no stray .env.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "DB_PATH", "JWT_SECRET", "COOKIE_NAME",
		"CLIENT_ORIGIN", "DAILY_SALT", "WORDS_ANSWERS_FILE", "WORDS_ALLOWED_FILE",
		"ROUND_TTL", "JWT_EXPIRES_DAYS", "WORD_LENGTH", "MAX_ATTEMPTS", "NODE_ENV",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsFromEmptyDir(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "wordle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\nmax_attempts: 8\nlog_format: console\n"), 0o644))

	t.Setenv("MAX_ATTEMPTS", "4")
	t.Setenv("DAILY_SALT", "pepper")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 4, cfg.MaxAttempts, "env beats file")
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "pepper", cfg.DailySalt)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COOKIE_NAME=from_dotenv\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.CookieName)
	assert.Empty(t, os.Getenv("COOKIE_NAME"), ".env is not exported to the process")
}

func TestLoad_OrderDotEnvYAMLEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("PORT=7000\nDAILY_SALT=dot_salt\nMAX_ATTEMPTS=3\n"), 0o644))
	path := filepath.Join(t.TempDir(), "wordle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\nmax_attempts: 8\n"), 0o644))
	t.Setenv("MAX_ATTEMPTS", "4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port, "YAML beats .env")
	assert.Equal(t, "dot_salt", cfg.DailySalt, ".env beats defaults")
	assert.Equal(t, 4, cfg.MaxAttempts, "env beats YAML and .env")
}

func TestLoad_BadDotEnvValue(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WORD_LENGTH=five\n"), 0o644))
	_, err := Load("")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Run("bad int", func(t *testing.T) {
		t.Setenv("WORD_LENGTH", "five")
		cfg := Defaults()
		assert.Error(t, cfg.applyEnvOverrides())
	})

	t.Run("production flag", func(t *testing.T) {
		t.Setenv("NODE_ENV", "Production")
		cfg := Defaults()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.True(t, cfg.Production)
		assert.Error(t, cfg.Validate(), "dev secret refused in production")
	})
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.WordLength = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.MaxAttempts = -1
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.LogFormat = "xml"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.RoundTTL = "soon"
	assert.Error(t, bad.Validate())
}

func TestDurations(t *testing.T) {
	cfg := Defaults()
	d, err := cfg.TTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, d)
	assert.Equal(t, 14*24*time.Hour, cfg.TokenTTL())

	cfg.RoundTTL = ""
	d, err = cfg.TTL()
	require.NoError(t, err)
	assert.Zero(t, d)
}
