// Package dialog renders terminal boxes, tables, and configuration
// diffs for user-facing messages.
package dialog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Separator is the horizontal rule framing dialogs.
var Separator = strings.Repeat("═", 60)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	oldStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	newStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
)

// CmdBox renders command inside a double-line box. indent shifts the
// whole box right; width is a preferred minimum inner width.
func CmdBox(command string, indent, width int) string {
	style := boxStyle
	if width > len(command)+2 {
		style = style.Width(width)
	}
	if indent > 0 {
		style = style.MarginLeft(indent)
	}
	return style.Render(command)
}

// FailedRootfs builds the remediation dialog shown when the guest root
// filesystem is missing. runCommand is the setup command the user
// should run; path is where the rootfs was expected.
func FailedRootfs(runCommand, path string) string {
	var b strings.Builder
	b.WriteString(Separator + "\n")
	b.WriteString("  " + errorStyle.Render("Error:") + " rootfs directory not found.\n\n")
	b.WriteString("  Expected location:\n")
	b.WriteString("    -> " + path + "\n\n")
	b.WriteString("  Please run the following command to set it up:\n")
	b.WriteString(CmdBox("$ "+runCommand, 2, 50) + "\n")
	b.WriteString(Separator)
	return b.String()
}

// SuccessSetup builds the dialog shown after a completed setup.
func SuccessSetup(runCommand string) string {
	var b strings.Builder
	b.WriteString(Separator + "\n")
	b.WriteString("  Installation completed successfully!\n\n")
	b.WriteString("  To start the environment, run:\n\n")
	b.WriteString(CmdBox("$ "+runCommand, 2, 50) + "\n")
	b.WriteString(Separator)
	return b.String()
}

// RenderTable renders key/value rows as a double-bordered table.
func RenderTable(rows [][2]string) string {
	t := table.New().
		Border(lipgloss.DoubleBorder()).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, row := range rows {
		t.Row(row[0], row[1])
	}
	return t.Render()
}

// ConfigDiff compares two like-shaped structs field by field and
// returns display rows. Changed values render as "old -> new" with the
// old value in red and the new in green.
//
// Both values are round-tripped through JSON, so only exported fields
// with json tags participate.
func ConfigDiff(oldVal, newVal any) [][2]string {
	oldMap := toMap(oldVal)
	newMap := toMap(newVal)

	keys := make([]string, 0, len(newMap))
	for key := range newMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys))
	for _, key := range keys {
		newStr := displayString(newMap[key])
		oldRaw, had := oldMap[key]
		oldStr := displayString(oldRaw)

		value := newStr
		if had && oldStr != newStr {
			value = oldStyle.Render(oldStr) + " -> " + newStyle.Render(newStr)
		}
		rows = append(rows, [2]string{key, value})
	}
	return rows
}

func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

func displayString(v any) string {
	switch val := v.(type) {
	case nil:
		return "(unset)"
	case string:
		if val == "" {
			return "(unset)"
		}
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
