package sandbox

import (
	"os"
	"path/filepath"
)

// iconsDir is scanned for per-theme cursor directories.
const iconsDir = "/usr/share/icons"

// desktopPaths are host paths bound into the guest for desktop
// integration when they exist. Missing entries are silently skipped.
var desktopPaths = []string{
	"/etc/asound.conf",
	"/etc/fonts",
	"/usr/share/font-config",
	"/usr/share/fontconfig",
	"/usr/share/fonts",
	"/usr/share/themes",
}

// Host answers path-existence questions for the argument builders.
// Tests substitute a fake to control which host paths are visible.
type Host interface {
	// Exists reports whether the host path exists.
	Exists(path string) bool

	// CursorDirs lists the existing <theme>/cursors directories under
	// /usr/share/icons.
	CursorDirs() []string
}

// OSHost is the Host backed by the real filesystem.
type OSHost struct{}

func (OSHost) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSHost) CursorDirs() []string {
	entries, err := os.ReadDir(iconsDir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		cursors := filepath.Join(iconsDir, entry.Name(), "cursors")
		if fi, err := os.Stat(cursors); err == nil && fi.IsDir() {
			dirs = append(dirs, cursors)
		}
	}
	return dirs
}
