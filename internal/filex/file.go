package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if missing and returns its absolute path.
// A relative dir is resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// UserCacheDir returns <user cache dir>/<app>, falling back to ./.<app>
// when the platform has no cache directory (e.g. $HOME unset in CI).
func UserCacheDir(app string) string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		return "." + app
	}
	return filepath.Join(base, app)
}
