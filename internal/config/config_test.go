package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://pepy.tech", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "#FF0000FF", cfg.Chart.Color)
	assert.Equal(t, 14, cfg.Chart.TitleFontSize)
	assert.Equal(t, 4, cfg.Chart.AxisFontSizeAdj)
	assert.Equal(t, 7, cfg.Chart.RollingWindow)
	assert.Equal(t, 720, cfg.Chart.Width)
	assert.Equal(t, 405, cfg.Chart.Height)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.APIKey = "abc123"
	cfg.Chart.Color = "#00FF00"
	cfg.Watch.Package = "requests"
	cfg.Watch.OutputPath = "requests.png"

	require.NoError(t, cfg.Save(path))
	assert.True(t, Exists(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: k\ntimeout: 3s\nchart:\n  color: \"#0000FF\"\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "#0000FF", cfg.Chart.Color)
	assert.Equal(t, 14, cfg.Chart.TitleFontSize)
	assert.Equal(t, "8989", cfg.Server.Port)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart: [unterminated"), 0600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestResolveAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "from-file"

	t.Setenv(EnvAPIKey, "from-env")
	key, err := cfg.ResolveAPIKey("from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", key)

	key, err = cfg.ResolveAPIKey("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	t.Setenv(EnvAPIKey, "")
	key, err = cfg.ResolveAPIKey("")
	require.NoError(t, err)
	assert.Equal(t, "from-file", key)

	cfg.APIKey = ""
	_, err = cfg.ResolveAPIKey("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadEnv(dir))

	t.Setenv(EnvAPIKey, "")
	os.Unsetenv(EnvAPIKey)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvAPIKey+"=dotenv-key\n"), 0600))
	require.NoError(t, LoadEnv(dir))
	assert.Equal(t, "dotenv-key", os.Getenv(EnvAPIKey))
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", GetConfigPath())

	t.Setenv(EnvConfigPath, "")
	assert.True(t, strings.HasSuffix(GetConfigPath(), filepath.Join(".pepychart", "config.yaml")))
}

func TestCreateOptionsValidate(t *testing.T) {
	valid := func() CreateOptions {
		return CreateOptions{
			Package:         "requests",
			APIKey:          "key",
			CreateImage:     true,
			OutputPath:      "out.png",
			RollingWindow:   7,
			TitleFontSize:   14,
			AxisFontSizeAdj: 4,
		}
	}

	opts := valid()
	assert.NoError(t, opts.Validate())

	opts = valid()
	opts.OutputPath = ""
	assert.ErrorIs(t, opts.Validate(), ErrMissingOutputPath)

	opts = valid()
	opts.CreateImage = false
	opts.OutputPath = ""
	assert.NoError(t, opts.Validate())

	opts = valid()
	opts.APIKey = ""
	assert.ErrorIs(t, opts.Validate(), ErrMissingAPIKey)

	opts = valid()
	opts.Package = " "
	assert.ErrorContains(t, opts.Validate(), "package name is required")

	opts = valid()
	opts.TitleFontSize = 4
	assert.ErrorContains(t, opts.Validate(), "axis font size adjustment")
}
