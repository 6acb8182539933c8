// Package cmd implements the command-line interface for alpack.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LinuxProativo/sandbox-utils/internal/config"
)

const (
	appName = "alpack"
	archEnv = "ALPACK_ARCH"
)

// paths is resolved once before any command runs and passed down
// explicitly from here.
var paths *config.Paths

// RootCmd is the base command for alpack.
var RootCmd = &cobra.Command{
	Use:   appName,
	Short: "Lightweight containment sessions over proot and bwrap",
	Long: `alpack prepares and launches lightweight containment sessions.

It downloads a root filesystem bootstrap, keeps it under your home
directory, and enters it through one of two interchangeable backends:
proot (ptrace-based, no privileges needed) or bwrap (kernel
namespaces). Missing backend binaries are fetched automatically on
x86_64 hosts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		p, err := config.NewPaths(appName, archEnv)
		if err != nil {
			return err
		}
		paths = p
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
