package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LinuxProativo/sandbox-utils/internal/config"
	"github.com/LinuxProativo/sandbox-utils/internal/dialog"
	"github.com/LinuxProativo/sandbox-utils/internal/sandbox"
)

// configCmd shows the persisted settings, or updates one key and
// renders the change as an old -> new diff table before saving.
var configCmd = &cobra.Command{
	Use:       "config [key value]",
	Short:     "Show or change persisted settings",
	Long:      "Without arguments, prints the current settings. With a key and a value, updates that setting.\n\nKeys: backend, rootfs, extra_binds, bootstrap_url",
	Args:      cobra.RangeArgs(0, 2),
	ValidArgs: []string{"backend", "rootfs", "extra_binds", "bootstrap_url"},
	RunE: func(_ *cobra.Command, args []string) error {
		settings, err := config.LoadSettings(paths.ConfigFile)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Println(dialog.RenderTable(dialog.ConfigDiff(settings, settings)))
			return nil
		}
		if len(args) == 1 {
			return fmt.Errorf("missing value for setting %q", args[0])
		}

		updated := *settings
		if err := applySetting(&updated, args[0], args[1]); err != nil {
			return err
		}

		fmt.Println(dialog.RenderTable(dialog.ConfigDiff(settings, &updated)))
		return updated.Save(paths.ConfigFile)
	},
}

func applySetting(s *config.Settings, key, value string) error {
	switch key {
	case "backend":
		if _, err := sandbox.BackendFor(value); err != nil {
			return err
		}
		s.Backend = value
	case "rootfs":
		s.Rootfs = value
	case "extra_binds":
		s.ExtraBinds = value
	case "bootstrap_url":
		s.BootstrapURL = value
	default:
		return fmt.Errorf("unknown setting: %q", key)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(configCmd)
}
