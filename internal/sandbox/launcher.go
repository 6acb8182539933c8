package sandbox

import (
	"fmt"
	"os"
	"os/exec"
)

// Launcher validates a session configuration, composes the full backend
// argument vector, and runs the backend with inherited stdio.
type Launcher struct {
	// Host answers path-existence queries during argument building.
	// The zero value uses the real filesystem.
	Host Host
}

// Run launches the configured session and blocks until it exits.
//
// The child's exit code is returned alongside a nil error: a non-zero
// or signalled exit is not a launch failure, and the caller decides
// whether to propagate it. The error is non-nil only when the session
// could not be started at all.
func (l Launcher) Run(cfg Config) (int, error) {
	host := l.Host
	if host == nil {
		host = OSHost{}
	}

	fi, err := os.Stat(cfg.Rootfs)
	if err != nil || !fi.IsDir() {
		return 0, &RootfsNotFoundError{Path: cfg.Rootfs}
	}

	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return 0, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.Home = home
	}

	backend, err := BackendFor(cfg.Backend)
	if err != nil {
		return 0, err
	}

	argv := composeArgv(&cfg, backend, CurrentIdentity(), host)

	cmd := exec.Command(cfg.BackendPath, argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("failed to start %s: %w", cfg.Backend, err)
	}
	return 0, nil
}

// composeArgv appends the identity-emulation block, the environment
// setup, and the optional command to the backend's own options.
func composeArgv(cfg *Config, backend Backend, id Identity, host Host) []string {
	args := backend.Args(cfg, host)

	if cfg.UseRoot {
		switch backend.Name() {
		case NameProot:
			args = append(args, "-0")
		case NameBwrap:
			args = append(args,
				"--uid", "0", "--gid", "0",
				"--setenv", "USER", "root",
				"--setenv", "LOGNAME", "root",
			)
		}
	}

	args = append(args, "env")
	if cfg.UseRoot {
		args = append(args, "PS1=# ", "USER=root", "LOGNAME=root", "UID=0", "EUID=0")
	} else {
		args = append(args, "PS1=$ ",
			fmt.Sprintf("UID=%d", id.UID),
			fmt.Sprintf("EUID=%d", id.EUID),
		)
	}
	args = append(args, "SHELL=/bin/sh", "PATH="+MinimalPath, "/bin/sh")

	if cfg.RunCmd != "" {
		args = append(args, "-c", cfg.RunCmd)
	}

	return args
}
