// ABOUTME: Tests for config loading: defaults, env overrides, config files, .env files, and validation.
// ABOUTME: Each test runs in a temp working directory so stray .env or config files cannot leak in.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.Addr)
	assert.Equal(t, Development, cfg.Environment)
	assert.True(t, cfg.LiveReload)
	assert.Equal(t, time.Second, cfg.ReloadInterval)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.CSSBundle)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnvOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("COURSESITE_ADDR", ":8080")
	t.Setenv("COURSESITE_ENVIRONMENT", "production")
	t.Setenv("COURSESITE_CSS_BUNDLE", "/build/app.css")
	t.Setenv("COURSESITE_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.LiveReload, "live reload defaults off in production")
	assert.Equal(t, "/build/app.css", cfg.CSSBundle)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoadExplicitLiveReloadWins(t *testing.T) {
	inTempDir(t)
	t.Setenv("COURSESITE_ENVIRONMENT", "production")
	t.Setenv("COURSESITE_LIVE_RELOAD", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.LiveReload)
}

func TestLoadConfigFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\ncontent_dir: ./docs\nlog_format: json\n"), 0o644))
	t.Setenv("COURSESITE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "./docs", cfg.ContentDir)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadDefaultConfigFileName(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coursesite.yaml"), []byte("site_file: site.yaml\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "site.yaml", cfg.SiteFile)
}

func TestLoadDotEnvDoesNotClobber(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("COURSESITE_ADDR=:7000\nCOURSESITE_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("COURSESITE_ADDR", ":6000")
	// Setenv registers restoration; unset the dotenv-only key afterwards too.
	t.Cleanup(func() { os.Unsetenv("COURSESITE_LOG_LEVEL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COURSESITE_ADDR='unterminated\n"), 0o644))

	_, err := Load()
	assert.ErrorContains(t, err, "loading .env")
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string][2]string{
		"environment": {"COURSESITE_ENVIRONMENT", "staging"},
		"log level":   {"COURSESITE_LOG_LEVEL", "loud"},
		"log format":  {"COURSESITE_LOG_FORMAT", "xml"},
		"interval":    {"COURSESITE_RELOAD_INTERVAL", "0s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			inTempDir(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsBrokenConfigFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [unterminated\n"), 0o644))
	t.Setenv("COURSESITE_CONFIG", path)

	_, err := Load()
	assert.ErrorContains(t, err, "reading config file")
}

func TestLogger(t *testing.T) {
	dev := (&Config{Environment: Development, LogLevel: "debug"}).Logger()
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)

	prod := (&Config{Environment: Production, LogLevel: "warn"}).Logger()
	assert.Equal(t, logrus.WarnLevel, prod.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)
}
