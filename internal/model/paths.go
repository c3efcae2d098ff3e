package model

import (
	"os"
	"path/filepath"
)

// defaultCacheDir returns ~/.policylens/cache, or a temp dir when home is unknown
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "policylens-cache")
	}
	return filepath.Join(home, ".policylens", "cache")
}
