package cmd

import (
	"github.com/spf13/cobra"

	"github.com/LinuxProativo/sandbox-utils/internal/doctor"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Checks if the sandbox backends are installed",
	Run: func(_ *cobra.Command, _ []string) {
		doctor.Run()
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
