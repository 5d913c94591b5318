package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir := getConfigDirFunc
	origPath := getConfigPathFunc
	getConfigDirFunc = func() (string, error) { return dir, nil }
	getConfigPathFunc = func() (string, error) { return filepath.Join(dir, "config.json"), nil }
	t.Cleanup(func() {
		getConfigDirFunc = origDir
		getConfigPathFunc = origPath
	})
}

func TestGlobalConfig_SaveAndLoad(t *testing.T) {
	withTempConfigDir(t)

	saved := &GlobalConfig{
		APIURL:   "http://localhost:9090",
		Username: "admin",
		Password: "s3cret",
	}
	require.NoError(t, SaveGlobalConfig(saved))

	loaded, err := LoadGlobalConfig()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.APIURL, loaded.APIURL)
	assert.Equal(t, saved.Username, loaded.Username)
	assert.Equal(t, saved.Password, loaded.Password)
}

func TestGlobalConfig_LoadMissingReturnsNil(t *testing.T) {
	withTempConfigDir(t)

	loaded, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestGlobalConfig_Delete(t *testing.T) {
	withTempConfigDir(t)

	require.NoError(t, SaveGlobalConfig(&GlobalConfig{APIURL: "http://localhost:8080"}))
	require.NoError(t, DeleteGlobalConfig())

	loaded, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting again is a no-op.
	require.NoError(t, DeleteGlobalConfig())
}

func TestGlobalConfig_SaveNil(t *testing.T) {
	withTempConfigDir(t)

	assert.Error(t, SaveGlobalConfig(nil))
}
