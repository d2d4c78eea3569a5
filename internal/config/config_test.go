package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Graylog)
	assert.Equal(t, 1, cfg.Physics.MaxSlideDepth)
	assert.InDelta(t, 0.005, cfg.Physics.SkinDistance, 1e-9)
	assert.InDelta(t, 20, cfg.Physics.Gravity, 1e-9)
	assert.InDelta(t, 45, cfg.Physics.SlopeLimit, 1e-9)
	assert.InDelta(t, 30, cfg.Animation.DefaultTicksPerSecond, 1e-9)
	assert.True(t, cfg.Animation.Loop)
	assert.Equal(t, "./baked", cfg.Bake.OutputDir)

	slide := cfg.Physics.SlideConfig()
	assert.Equal(t, 1, slide.MaxDepth)
	assert.InDelta(t, 0.005*0.005, slide.MinSlideLengthSq, 1e-9)
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	data := `{
		"logLevel": "debug",
		"physics": {"maxSlideDepth": 4, "gravity": 9.81},
		"animation": {"loop": false}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(data), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.Physics.MaxSlideDepth)
	assert.InDelta(t, 9.81, cfg.Physics.Gravity, 1e-5)
	assert.False(t, cfg.Animation.Loop)
	assert.InDelta(t, 0.005, cfg.Physics.SkinDistance, 1e-9, "unset keys keep their defaults")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GAMECORE_LOGLEVEL", "warn")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName+".json")

	require.NoError(t, os.WriteFile(path, []byte(`{"physics": `), 0o644))
	_, err := Load(dir)
	assert.ErrorContains(t, err, "read config")

	require.NoError(t, os.WriteFile(path, []byte(`{"physics": {"slopeLimit": 120}}`), 0o644))
	_, err = Load(dir)
	assert.ErrorContains(t, err, "slopeLimit")
}
