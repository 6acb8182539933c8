// Package doctor checks whether the host has the external tools a
// sandbox session can use.
package doctor

import (
	"fmt"
	"os/exec"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Run prints the availability of each containment backend and helper.
// A missing backend is not fatal: it can be downloaded on demand for
// supported architectures.
func Run() {
	fmt.Println(titleStyle.Render("Checking sandbox host environment..."))

	tools := []string{"proot", "bwrap", "tar"}
	allFound := true

	for _, tool := range tools {
		path, err := exec.LookPath(tool)
		if err != nil {
			fmt.Printf("%s %-8s : Not found\n", errorStyle.Render("✗"), tool)
			allFound = false
		} else {
			fmt.Printf("%s %-8s : %s\n", successStyle.Render("✓"), tool, dimStyle.Render(path))
		}
	}

	if !allFound {
		fmt.Println(lipgloss.NewStyle().MarginTop(1).Render("Missing backends are downloaded automatically on x86_64 hosts."))
	} else {
		fmt.Println(lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("42")).Render("All sandbox tools are ready."))
	}
}
