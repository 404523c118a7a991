package answer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCwd is the directory answers are stored in when no cwd is configured.
const DefaultCwd = "~/answers"

// Options configures where a store keeps its document.
type Options struct {
	// Cwd is the base directory for the store's file. Supports a leading ~.
	Cwd string
}

// PathResolver returns the absolute file path for a named store.
type PathResolver func(name string, opts Options) (string, error)

// ExpandHome replaces a leading ~ with the user's home directory and returns
// an absolute, cleaned path.
func ExpandHome(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	return abs, nil
}

// ResolveDir returns the absolute store directory for opts.
func ResolveDir(opts Options) (string, error) {
	cwd := opts.Cwd
	if cwd == "" {
		cwd = DefaultCwd
	}
	return ExpandHome(cwd)
}

// ResolvePath is the default PathResolver: <cwd>/<name>.json.
func ResolvePath(name string, opts Options) (string, error) {
	dir, err := ResolveDir(opts)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}
