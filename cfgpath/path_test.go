//go:build !windows

package cfgpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TrisTech/goupd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withXDG(t *testing.T) (config, cache string) {
	t.Helper()
	config, cache = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", config)
	t.Setenv("XDG_CACHE_HOME", cache)
	setup()
	t.Cleanup(setup)
	return config, cache
}

func TestDirs(t *testing.T) {
	config, cache := withXDG(t)

	assert.Equal(t, filepath.Join(config, goupd.PROJECT_NAME), GetConfigDir())
	assert.Equal(t, filepath.Join(cache, goupd.PROJECT_NAME), GetCacheDir())
	assert.Equal(t, filepath.Join(config, goupd.PROJECT_NAME, "config.yaml"), GetConfigFile())
}

func TestDirsHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")
	setup()
	t.Cleanup(setup)

	assert.Equal(t, filepath.Join(home, ".config", goupd.PROJECT_NAME), GetConfigDir())
	assert.Equal(t, filepath.Join(home, ".cache", goupd.PROJECT_NAME), GetCacheDir())
}

func TestResolve(t *testing.T) {
	withXDG(t)
	require.NoError(t, EnsureDir(GetConfigDir()))
	require.NoError(t, os.WriteFile(filepath.Join(GetConfigDir(), "icon.png"), nil, 0644))

	assert.Equal(t, "", Resolve(""))
	assert.Equal(t, "/abs/icon.png", Resolve("/abs/icon.png"))
	assert.Equal(t, filepath.Join(GetConfigDir(), "icon.png"), Resolve("icon.png"))
	assert.Equal(t, filepath.Join(initialPath, "other.png"), Resolve("other.png"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "existing dir is fine")

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, EnsureDir(file))
}
