package sandbox

import "strings"

// resolvFiles are name-resolution and locale files exposed read-only
// into the guest. All use the try form: bwrap tolerates a missing
// source at launch time.
var resolvFiles = []string{
	"/etc/host.conf",
	"/etc/hosts",
	"/etc/hosts.equiv",
	"/etc/netgroup",
	"/etc/networks",
	"/etc/nsswitch.conf",
	"/etc/resolv.conf",
	"/etc/localtime",
}

// bwrapBackend builds arguments for the namespace-based isolator.
type bwrapBackend struct{}

func (bwrapBackend) Name() string { return NameBwrap }

func (bwrapBackend) Args(cfg *Config, host Host) []string {
	args := []string{
		"--unshare-user",
		"--share-net",
		"--bind", cfg.Rootfs, "/",
		"--die-with-parent",
	}

	for _, path := range resolvFiles {
		args = append(args, "--ro-bind-try", path, path)
	}

	args = append(args,
		"--dev-bind", "/dev", "/dev",
		"--ro-bind", "/sys", "/sys",
		"--bind-try", "/proc", "/proc",
		"--bind-try", "/tmp", "/tmp",
		"--bind-try", "/run", "/run",
		"--ro-bind", "/var/run/dbus/system_bus_socket", "/var/run/dbus/system_bus_socket",
		"--bind", cfg.Home, cfg.Home,
		"--bind", "/media", "/media",
		"--bind", "/mnt", "/mnt",
	)

	args = append(args, strings.Fields(cfg.ExtraBinds)...)
	args = append(args, "--setenv", "PATH", MinimalPath)

	// Opposite polarity from proot: the host identity files are exposed
	// unless the caller opted out.
	if !cfg.NoGroup {
		args = append(args,
			"--ro-bind-try", "/etc/passwd", "/etc/passwd",
			"--ro-bind-try", "/etc/group", "/etc/group",
		)
	}

	// bwrap mounts a fresh /proc, so the guest's /etc/mtab must point at
	// the live mounts table or tools like df report nonsense.
	RepairMtab(cfg.Rootfs)

	if !cfg.IgnoreExtraBind {
		for _, path := range desktopPaths {
			if host.Exists(path) {
				args = append(args, "--ro-bind", path, path)
			}
		}
		for _, dir := range host.CursorDirs() {
			args = append(args, "--ro-bind", dir, dir)
		}
	}

	return args
}
