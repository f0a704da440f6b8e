package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".lexbot"

// GetRuntimePath is where .env, the database and the knowledge file live.
// Relative paths are taken from the home directory.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("LEXBOT_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
