// Package tool locates or acquires the containment backend binaries.
package tool

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/LinuxProativo/sandbox-utils/internal/config"
	"github.com/LinuxProativo/sandbox-utils/internal/fetch"
	"github.com/LinuxProativo/sandbox-utils/internal/sandbox"
)

// supportedArch is the only architecture with prebuilt release binaries.
const supportedArch = "x86_64"

// downloadLinks maps backend names to their static release assets.
var downloadLinks = map[string]string{
	sandbox.NameProot: "https://github.com/LinuxProativo/StaticHub/releases/download/proot/proot",
	sandbox.NameBwrap: "https://github.com/LinuxProativo/StaticHub/releases/download/bwrap/bwrap",
}

// download is swapped out in tests.
var download = fetch.Download

// Resolved is a backend binary ready to launch. It is produced once at
// startup and read-only afterwards.
type Resolved struct {
	Name string
	Path string
}

// UnavailableError reports a backend that is neither installed nor
// downloadable for the detected architecture.
type UnavailableError struct {
	Backend string
	Arch    string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s not found and no binary available for %s", e.Backend, e.Arch)
}

// Resolve finds the named backend on the search path, downloading a
// prebuilt binary into ~/.local/bin when possible.
//
// Side effect: ~/.local/bin is appended to the process PATH so that
// both this lookup and the spawned guest inherit it.
func Resolve(name string, paths *config.Paths) (Resolved, error) {
	localBin := filepath.Join(paths.Home, ".local", "bin")
	os.Setenv("PATH", os.Getenv("PATH")+string(os.PathListSeparator)+localBin)

	if target, err := exec.LookPath(name); err == nil {
		return Resolved{Name: name, Path: target}, nil
	}

	if paths.Arch != supportedArch {
		return Resolved{}, &UnavailableError{Backend: name, Arch: paths.Arch}
	}

	link, ok := downloadLinks[name]
	if !ok {
		return Resolved{}, &sandbox.UnsupportedBackendError{Name: name}
	}

	if err := os.MkdirAll(localBin, 0o755); err != nil {
		return Resolved{}, fmt.Errorf("failed to create %s: %w", localBin, err)
	}
	if err := download(link, localBin, name, nil); err != nil {
		return Resolved{}, err
	}

	target := filepath.Join(localBin, name)
	if err := os.Chmod(target, 0o755); err != nil {
		return Resolved{}, fmt.Errorf("failed to mark %s executable: %w", target, err)
	}

	return Resolved{Name: name, Path: target}, nil
}
