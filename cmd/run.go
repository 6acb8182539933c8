package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LinuxProativo/sandbox-utils/internal/config"
	"github.com/LinuxProativo/sandbox-utils/internal/dialog"
	"github.com/LinuxProativo/sandbox-utils/internal/sandbox"
	"github.com/LinuxProativo/sandbox-utils/internal/tool"
)

var (
	runCommand     string
	runBackend     string
	runRootfs      string
	runBind        string
	runUseRoot     bool
	runIgnoreExtra bool
	runNoGroup     bool
)

// runCmd enters the sandbox, either interactively or running a single
// command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Enter the sandboxed environment",
	Long: `Launches a containment session in the configured rootfs.

Without -c an interactive shell is started. The session inherits the
terminal; exit status of the guest propagates to alpack's own exit.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		settings, err := config.LoadSettings(paths.ConfigFile)
		if err != nil {
			return err
		}

		backendName := runBackend
		if backendName == "" {
			backendName = settings.Backend
		}

		resolved, err := tool.Resolve(backendName, paths)
		if err != nil {
			return err
		}

		rootfs := runRootfs
		if rootfs == "" {
			rootfs = settings.Rootfs
		}
		if rootfs == "" {
			rootfs = paths.DefaultRootfs
		}

		extraBinds := runBind
		if extraBinds == "" {
			extraBinds = settings.ExtraBinds
		}

		cfg := sandbox.Config{
			Rootfs:          rootfs,
			RunCmd:          runCommand,
			Backend:         resolved.Name,
			BackendPath:     resolved.Path,
			Home:            paths.Home,
			ExtraBinds:      extraBinds,
			UseRoot:         runUseRoot,
			IgnoreExtraBind: runIgnoreExtra,
			NoGroup:         runNoGroup,
		}

		exit, err := sandbox.Launcher{}.Run(cfg)
		if err != nil {
			var notFound *sandbox.RootfsNotFoundError
			if errors.As(err, &notFound) {
				fmt.Fprintln(os.Stderr, dialog.FailedRootfs(paths.AppName+" setup", notFound.Path))
				os.Exit(1)
			}
			return err
		}
		if exit != 0 {
			os.Exit(exit)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runCommand, "command", "c", "", "Command to run inside the sandbox (default: interactive shell)")
	runCmd.Flags().StringVar(&runBackend, "backend", "", "Containment backend: proot or bwrap (default from config)")
	runCmd.Flags().StringVar(&runRootfs, "rootfs", "", "Guest root filesystem directory (default from config)")
	runCmd.Flags().StringVar(&runBind, "bind", "", "Extra backend bind arguments, split on whitespace")
	runCmd.Flags().BoolVar(&runUseRoot, "root", false, "Present as uid/gid 0 inside the guest")
	runCmd.Flags().BoolVar(&runIgnoreExtra, "ignore-extra-bind", false, "Skip host desktop-integration binds (fonts, themes, cursors)")
	runCmd.Flags().BoolVar(&runNoGroup, "no-group", false, "Do not expose host /etc/passwd and /etc/group")
	RootCmd.AddCommand(runCmd)
}
