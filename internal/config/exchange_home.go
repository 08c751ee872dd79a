package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv names the environment variable that overrides the exchange home.
const HomeEnv = "EXCHANGE_HOME"

// GetExchangeHome returns the directory holding exchange tool state
// (config.yaml, history database, remove lock).
// Priority order:
//  1. EXCHANGE_HOME environment variable (if set)
//  2. .exchange in the current working directory
//
// The directory is not created.
func GetExchangeHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return filepath.Join(cwd, ".exchange"), nil
}

// GetHistoryDBPath returns the default history database path
// Always returns: $EXCHANGE_HOME/history/removals.db
func GetHistoryDBPath() (string, error) {
	home, err := GetExchangeHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history", "removals.db"), nil
}

// GetRemoveLockPath returns the lock file that serializes remove runs
func GetRemoveLockPath() (string, error) {
	home, err := GetExchangeHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "remove.lock"), nil
}
