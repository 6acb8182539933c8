package sandbox

import "strings"

// prootBackend builds arguments for the ptrace-based emulator. It needs
// no privileges: proot intercepts syscalls to remap paths, so binds use
// the single-token --bind=src[:dest] form.
type prootBackend struct{}

func (prootBackend) Name() string { return NameProot }

func (prootBackend) Args(cfg *Config, host Host) []string {
	args := []string{"-R", cfg.Rootfs, "--bind=/media", "--bind=/mnt"}
	args = append(args, strings.Fields(cfg.ExtraBinds)...)

	// Self-binding the guest's own identity files pins them explicitly
	// so the caller's host passwd/group never leak in.
	if cfg.NoGroup {
		args = append(args,
			"--bind="+cfg.Rootfs+"/etc/group:/etc/group",
			"--bind="+cfg.Rootfs+"/etc/passwd:/etc/passwd",
		)
	}

	if !cfg.IgnoreExtraBind {
		for _, path := range desktopPaths {
			if host.Exists(path) {
				args = append(args, "--bind="+path)
			}
		}
		for _, dir := range host.CursorDirs() {
			args = append(args, "--bind="+dir)
		}
	}

	return args
}
