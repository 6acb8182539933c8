package sandbox

import (
	"os"
	"path/filepath"
	"testing"
)

func mtabPath(rootfs string) string {
	return filepath.Join(rootfs, "etc", "mtab")
}

func newRootfs(t *testing.T) string {
	t.Helper()
	rootfs := t.TempDir()
	if err := os.MkdirAll(filepath.Join(rootfs, "etc"), 0o755); err != nil {
		t.Fatal(err)
	}
	return rootfs
}

func assertMtabLink(t *testing.T, rootfs string) {
	t.Helper()
	target, err := os.Readlink(mtabPath(rootfs))
	if err != nil {
		t.Fatalf("mtab is not a symlink: %v", err)
	}
	if target != mtabTarget {
		t.Errorf("mtab points at %q, want %q", target, mtabTarget)
	}
}

func TestRepairMtabCreates(t *testing.T) {
	rootfs := newRootfs(t)
	RepairMtab(rootfs)
	assertMtabLink(t, rootfs)
}

func TestRepairMtabIdempotent(t *testing.T) {
	rootfs := newRootfs(t)
	RepairMtab(rootfs)
	RepairMtab(rootfs)
	assertMtabLink(t, rootfs)
}

func TestRepairMtabReplacesFile(t *testing.T) {
	rootfs := newRootfs(t)
	if err := os.WriteFile(mtabPath(rootfs), []byte("stale mounts"), 0o644); err != nil {
		t.Fatal(err)
	}
	RepairMtab(rootfs)
	assertMtabLink(t, rootfs)
}

func TestRepairMtabReplacesDirectory(t *testing.T) {
	rootfs := newRootfs(t)
	if err := os.MkdirAll(filepath.Join(mtabPath(rootfs), "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	RepairMtab(rootfs)
	assertMtabLink(t, rootfs)
}

func TestRepairMtabReplacesWrongSymlink(t *testing.T) {
	rootfs := newRootfs(t)
	if err := os.Symlink("/etc/mtab", mtabPath(rootfs)); err != nil {
		t.Fatal(err)
	}
	RepairMtab(rootfs)
	assertMtabLink(t, rootfs)
}

func TestRepairMtabMissingEtcIsNonFatal(t *testing.T) {
	// No etc/ directory: symlink creation fails, which must only warn.
	RepairMtab(t.TempDir())
}
