// Package config holds the application path bundle and the persisted
// user settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Paths bundles every directory and environment fact the application
// needs. It is constructed once at startup and passed down explicitly;
// nothing in this package keeps global state.
type Paths struct {
	// AppName is the invoked binary name, used in dialogs.
	AppName string
	// Arch is the target architecture for prebuilt binary downloads.
	Arch string
	// Home is the user's home directory.
	Home string
	// ConfigDir is ~/.config/<name>.
	ConfigDir string
	// ConfigFile is the settings file inside ConfigDir.
	ConfigFile string
	// CacheDir is ~/.cache/<name>, used for downloaded archives.
	CacheDir string
	// DefaultRootfs is ~/.<name>, the rootfs location when none is configured.
	DefaultRootfs string
	// TempDir is /tmp/<name>.
	TempDir string
}

// NewPaths resolves the path bundle for the given application name and
// creates the config and cache directories.
//
// Architecture detection precedence: the archEnv variable, then the
// generic ARCH variable, then the runtime architecture normalized to
// uname spelling (amd64 becomes x86_64).
func NewPaths(name, archEnv string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	configDir := filepath.Join(home, ".config", name)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	cacheDir := filepath.Join(home, ".cache", name)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	appName := name
	if len(os.Args) > 0 {
		if base := filepath.Base(os.Args[0]); base != "." && base != string(os.PathSeparator) {
			appName = base
		}
	}

	arch := os.Getenv(archEnv)
	if arch == "" {
		arch = os.Getenv("ARCH")
	}
	if arch == "" {
		arch = normalizeArch(runtime.GOARCH)
	}

	return &Paths{
		AppName:       appName,
		Arch:          arch,
		Home:          home,
		ConfigDir:     configDir,
		ConfigFile:    filepath.Join(configDir, "config.yml"),
		CacheDir:      cacheDir,
		DefaultRootfs: filepath.Join(home, "."+name),
		TempDir:       filepath.Join(os.TempDir(), name),
	}, nil
}

// normalizeArch maps Go architecture names to the uname spellings used
// by the prebuilt binary release tables.
func normalizeArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "i686"
	default:
		return goarch
	}
}

// Settings is the persisted user configuration.
type Settings struct {
	Backend      string `yaml:"backend" json:"backend"`
	Rootfs       string `yaml:"rootfs,omitempty" json:"rootfs"`
	ExtraBinds   string `yaml:"extra_binds,omitempty" json:"extra_binds"`
	BootstrapURL string `yaml:"bootstrap_url,omitempty" json:"bootstrap_url"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Backend:      "proot",
		BootstrapURL: "https://geo.mirror.pkgbuild.com/iso/latest/archlinux-bootstrap-x86_64.tar.zst",
	}
}

// LoadSettings reads the settings file at path. A missing file yields
// the defaults; a malformed file is an error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the settings to path.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
