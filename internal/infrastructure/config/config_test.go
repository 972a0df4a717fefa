package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"PORT", "LOG_LEVEL", "RATE_API_BASE_URL", "RATE_API_TIMEOUT",
		"RATE_API_REQUESTS_PER_SECOND", "RATE_FALLBACK", "RATE_STORE_PATH", "MAX_UPLOAD_SIZE_BYTES",
		"RATE_BASE_CURRENCY", "RATE_QUOTE_CURRENCY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.exchangerate-api.com/v4", cfg.RateAPIBaseURL)
	assert.Equal(t, time.Duration(0), cfg.RateAPITimeout)
	assert.Equal(t, 5.0, cfg.RateAPIRequestsPerSecond)
	assert.Equal(t, 1.10, cfg.FallbackRate)
	assert.Equal(t, "EUR", cfg.BaseCurrency)
	assert.Equal(t, "USD", cfg.QuoteCurrency)
	assert.Equal(t, "", cfg.RateStorePath)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSizeBytes)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_API_TIMEOUT", "15s")
	t.Setenv("RATE_FALLBACK", "1.2")
	t.Setenv("RATE_STORE_PATH", "/tmp/rates")
	t.Setenv("RATE_QUOTE_CURRENCY", "gbp")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.RateAPITimeout)
	assert.Equal(t, 1.2, cfg.FallbackRate)
	assert.Equal(t, "/tmp/rates", cfg.RateStorePath)
	assert.Equal(t, "GBP", cfg.QuoteCurrency)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RATE_FALLBACK", "abc")
	t.Setenv("MAX_UPLOAD_SIZE_BYTES", "-5")
	t.Setenv("RATE_API_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 1.10, cfg.FallbackRate)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSizeBytes)
	assert.Equal(t, time.Duration(0), cfg.RateAPITimeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("RATE_API_REQUESTS_PER_SECOND", "")
	os.Unsetenv("RATE_API_REQUESTS_PER_SECOND")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LOG_LEVEL=debug\nRATE_API_REQUESTS_PER_SECOND=0\n"), 0o644))

	cfg := Load()

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.0, cfg.RateAPIRequestsPerSecond)
}
