package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/square/gsel/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inEmptyDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxDepth)
	assert.Equal(t, 100000, cfg.MaxHosts)
	assert.Equal(t, 10000, cfg.MaxQueryLength)
	assert.Equal(t, 50, cfg.Maxflight)
	assert.Equal(t, FormatList, cfg.Format)
	assert.False(t, cfg.Debug)
	assert.Equal(t, query.DefaultLimits, cfg.Limits())
}

func TestLoadEnv(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("GSEL_MAX_DEPTH", "7")
	t.Setenv("GSEL_FORMAT", "folded")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxDepth)
	assert.Equal(t, FormatFolded, cfg.Format)

	limits := cfg.Limits()
	assert.Equal(t, 7, limits.MaxDepth)
	assert.Equal(t, 7, limits.Pattern.MaxDepth)
}

func TestLoadFile(t *testing.T) {
	inEmptyDir(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_hosts: 20\nformat: yaml\nmaxflight: 4\n"), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.MaxHosts)
	assert.Equal(t, FormatYAML, cfg.Format)
	assert.Equal(t, 4, cfg.Maxflight)
}

func TestLoadDiscoveredFile(t *testing.T) {
	inEmptyDir(t)
	require.NoError(t, os.WriteFile("gsel.yaml", []byte("format: range\n"), 0o600))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, FormatRange, cfg.Format)
}

func TestLoadMissingFile(t *testing.T) {
	inEmptyDir(t)
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{MaxDepth: 1, MaxHosts: 1, MaxQueryLength: 1, Maxflight: 1, Format: FormatList}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.Format = "json"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.MaxHosts = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Maxflight = -1
	assert.Error(t, bad.Validate())
}
