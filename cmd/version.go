package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the current version of alpack, set during build time.
var Version = "dev"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of alpack",
	RunE: func(_ *cobra.Command, _ []string) error {
		fmt.Println(appName, Version)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
