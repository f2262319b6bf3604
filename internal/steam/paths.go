package steam

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/dmaher/steamswap/internal/domain"
)

// defaultRoots lists the usual Steam installation locations for the
// current OS, in preference order.
func defaultRoots() []string {
	switch runtime.GOOS {
	case "windows":
		var roots []string
		if pf := os.Getenv("ProgramFiles(x86)"); pf != "" {
			roots = append(roots, filepath.Join(pf, "Steam"))
		}
		if pf := os.Getenv("ProgramFiles"); pf != "" {
			roots = append(roots, filepath.Join(pf, "Steam"))
		}
		return roots
	case "darwin":
		home, _ := os.UserHomeDir()
		return []string{filepath.Join(home, "Library", "Application Support", "Steam")}
	default:
		home, _ := os.UserHomeDir()
		return []string{
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
		}
	}
}

// ResolveRoot returns the Steam installation root. An explicit configured
// root wins; otherwise the per-OS default locations are probed.
func ResolveRoot(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", domain.ErrSteamNotFound
		}
		return configured, nil
	}
	for _, root := range defaultRoots() {
		if _, err := os.Stat(filepath.Join(root, "config")); err == nil {
			return root, nil
		}
	}
	return "", domain.ErrSteamNotFound
}
