package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"prefixddns-cli/internal/api"
	"prefixddns-cli/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	t.Setenv("PREFIXDDNS_CONFIG_DIR", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
	assert.Equal(t, Defaults(), cfg.WithDefaults())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PREFIXDDNS_CONFIG_DIR", filepath.Join(dir, "nested"))

	want := Config{
		Server:          "http://router:3000",
		FakeIP:          "2001:db8:ffff::1",
		ReconnectDelay:  5 * time.Second,
		RequestTimeout:  2 * time.Second,
		LogBuffer:       50,
		DefaultTemplate: "duckdns",
		NoColor:         true,
	}
	require.NoError(t, Save(want))

	path, err := Path()
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "reconnect_delay: 5s")

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestWithDefaultsKeepsSetFields(t *testing.T) {
	cfg := Config{Server: "http://x", DefaultTemplate: "nope"}.WithDefaults()
	assert.Equal(t, "http://x", cfg.Server)
	assert.Equal(t, "empty", cfg.DefaultTemplate)
	assert.Equal(t, events.DefaultReconnectDelay, cfg.ReconnectDelay)
	assert.Equal(t, api.DefaultTimeout, cfg.RequestTimeout)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PREFIXDDNS_SERVER":          "http://env:3000",
		"PREFIXDDNS_RECONNECT_DELAY": "bogus",
		"PREFIXDDNS_LOG_BUFFER":      "20",
		"NO_COLOR":                   "1",
	}
	cfg, err := Config{Server: "http://file", ReconnectDelay: time.Second}.ApplyEnv(func(k string) string { return env[k] })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREFIXDDNS_RECONNECT_DELAY")
	assert.Equal(t, "http://env:3000", cfg.Server)
	assert.Equal(t, time.Second, cfg.ReconnectDelay)
	assert.Equal(t, 20, cfg.LogBuffer)
	assert.True(t, cfg.NoColor)
}

func TestSet(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Set("server", " http://a "))
	require.NoError(t, cfg.Set("request_timeout", "3s"))
	require.NoError(t, cfg.Set("default_template", "empty"))
	require.NoError(t, cfg.Set("no_color", "true"))
	assert.Equal(t, "http://a", cfg.Server)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.NoColor)

	assert.Error(t, cfg.Set("log_buffer", "many"))
	assert.Error(t, cfg.Set("default_template", "nope"))
	assert.Error(t, cfg.Set("color", "red"))
}

func TestWatcherSeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveFile(path, Config{FakeIP: "2001:db8::1"}))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	got := make(chan Config, 1)
	go func() {
		cfg, err := w.Next()
		if err == nil {
			got <- cfg
		}
	}()

	require.NoError(t, SaveFile(path, Config{FakeIP: "2001:db8::99"}))
	select {
	case cfg := <-got:
		assert.Equal(t, "2001:db8::99", cfg.FakeIP)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a reload after the file was replaced")
	}
}
