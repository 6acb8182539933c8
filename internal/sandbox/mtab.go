package sandbox

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// mtabTarget is the desired symlink target for the guest's /etc/mtab.
const mtabTarget = "/proc/self/mounts"

var warnStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))

// RepairMtab ensures <rootfs>/etc/mtab is a symlink to the live mounts
// table. It is idempotent and never fails the caller; a failed symlink
// creation is reported as a warning and the launch proceeds.
func RepairMtab(rootfs string) {
	mtab := filepath.Join(rootfs, "etc", "mtab")

	if fi, err := os.Lstat(mtab); err == nil {
		if fi.Mode()&os.ModeSymlink != 0 {
			if target, err := os.Readlink(mtab); err == nil && target == mtabTarget {
				return
			}
		}
		if fi.IsDir() {
			_ = os.RemoveAll(mtab)
		} else {
			_ = os.Remove(mtab)
		}
	}

	if err := os.Symlink(mtabTarget, mtab); err != nil {
		fmt.Fprintf(os.Stderr, "%s: failed to fix mtab symlink: %v\n", warnStyle.Render("Warning"), err)
	}
}
