package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no .env here
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "secrets.json", cfg.DatabaseConfigPath)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.BreakerEnabled)
	assert.Equal(t, 3, cfg.BreakerFailures)
	assert.Equal(t, 10, cfg.LogSampleInterval)
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "15")
	t.Setenv("READINESS_INTERVAL", "500ms")
	t.Setenv("BREAKER_ENABLED", "true")
	t.Setenv("BREAKER_FAILURES", "not-a-number")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.ReadinessInterval)
	assert.True(t, cfg.BreakerEnabled)
	assert.Equal(t, 3, cfg.BreakerFailures, "unparsable values fall back to the default")
}

func TestLoadDatabaseConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	doc := `{"urls":{
		"movies":{"full":"https://api/all.json","summaries":"https://api/s","paged":"https://api/p","byId":"https://api/m"},
		"images":{"noGo":"static/nope.png","posters":"https://img/w500","backdrops":"https://img/original"}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := LoadDatabaseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api/m", cfg.URLs.Movies.ByID)
	assert.Equal(t, "https://img/original", cfg.URLs.Images.Backdrops)
	assert.Equal(t, "static/nope.png", cfg.URLs.Images.NoGo)
}

func TestLoadDatabaseConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDatabaseConfig(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"urls":`), 0o600))
	_, err = LoadDatabaseConfig(bad)
	assert.ErrorContains(t, err, "decode database config")

	incomplete := filepath.Join(dir, "incomplete.json")
	require.NoError(t, os.WriteFile(incomplete, []byte(`{"urls":{"movies":{"full":"x"}}}`), 0o600))
	_, err = LoadDatabaseConfig(incomplete)
	assert.ErrorContains(t, err, "urls.movies.byId")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
