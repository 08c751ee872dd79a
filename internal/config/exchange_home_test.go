package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExchangeHomeFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	got, err := GetExchangeHome()
	require.NoError(t, err)
	assert.Equal(t, home, got)

	lock, err := GetRemoveLockPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "remove.lock"), lock)
}

func TestGetExchangeHomeFallsBackToWorkingDirectory(t *testing.T) {
	t.Setenv(HomeEnv, "")

	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := GetExchangeHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".exchange"), got)
	assert.NoDirExists(t, got, "home must not be created eagerly")
}
