package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: 127.0.0.1:9000
nav:
  inflateAmount: 0.5
walk:
  speed: 12
scene:
  path: room.geojson
  fallbackTolerance: 2
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, 0.5, cfg.Nav.InflateAmount)
	assert.Equal(t, 1.0, cfg.Nav.MinWaypointDistance, "default kept")
	assert.Equal(t, 12.0, cfg.Walk.Speed)
	assert.Equal(t, 20.0, cfg.Walk.TickRate, "default kept")
	assert.Equal(t, "room.geojson", cfg.Scene.Path)
	assert.Equal(t, 2.0, cfg.Scene.FallbackTolerance)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("walk: [1, 2"), 0o644))
	_, err = loadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("walk:\n  tickRate: 0\n"), 0o644))
	_, err = loadConfig(invalid)
	assert.ErrorContains(t, err, "tickRate")
}

func TestParseFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: :7000\nlog:\n  level: debug\n"), 0o644))

	cfg, err := parseFlags([]string{"-config", path, "-listen", ":7001", "-inflate", "0.2"})
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 0.2, cfg.Nav.InflateAmount)

	_, err = parseFlags([]string{"-nope"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(LogConfig{Level: "warn", File: filepath.Join(t.TempDir(), "nav.log")})
	require.NoError(t, err)
	log.Warn("hello")
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}
