package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// fakeHost controls which host paths the builders see.
type fakeHost struct {
	existing map[string]bool
	cursors  []string
}

func (f fakeHost) Exists(path string) bool { return f.existing[path] }
func (f fakeHost) CursorDirs() []string    { return f.cursors }

// containsSeq reports whether args contains want as a contiguous
// subsequence.
func containsSeq(args, want []string) bool {
	for i := 0; i+len(want) <= len(args); i++ {
		if slices.Equal(args[i:i+len(want)], want) {
			return true
		}
	}
	return false
}

// bwrapRootfs returns a rootfs directory with an etc/ subdir so the
// mtab repair triggered by the bwrap builder can succeed.
func bwrapRootfs(t *testing.T) string {
	t.Helper()
	rootfs := t.TempDir()
	if err := os.MkdirAll(filepath.Join(rootfs, "etc"), 0o755); err != nil {
		t.Fatal(err)
	}
	return rootfs
}

func TestBackendFor(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{NameProot, false},
		{NameBwrap, false},
		{"chroot", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := BackendFor(tt.name)
			if tt.wantErr {
				var unsupported *UnsupportedBackendError
				if !errors.As(err, &unsupported) {
					t.Fatalf("BackendFor(%q) error = %v, want UnsupportedBackendError", tt.name, err)
				}
				if unsupported.Name != tt.name {
					t.Errorf("error carries name %q, want %q", unsupported.Name, tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("BackendFor(%q) failed: %v", tt.name, err)
			}
			if backend.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", backend.Name(), tt.name)
			}
		})
	}
}

func TestProotBaseArgs(t *testing.T) {
	cfg := &Config{Rootfs: "/rootfs", ExtraBinds: "--bind=/opt/data"}
	args := prootBackend{}.Args(cfg, fakeHost{})

	want := []string{"-R", "/rootfs", "--bind=/media", "--bind=/mnt", "--bind=/opt/data"}
	if !slices.Equal(args[:len(want)], want) {
		t.Errorf("base args = %v, want prefix %v", args, want)
	}
}

func TestProotNoGroupSelfBinds(t *testing.T) {
	tests := []struct {
		name    string
		noGroup bool
		want    bool
	}{
		{"enabled", true, true},
		{"disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Rootfs: "/rootfs", NoGroup: tt.noGroup}
			args := prootBackend{}.Args(cfg, fakeHost{})

			hasGroup := slices.Contains(args, "--bind=/rootfs/etc/group:/etc/group")
			hasPasswd := slices.Contains(args, "--bind=/rootfs/etc/passwd:/etc/passwd")
			if hasGroup != tt.want || hasPasswd != tt.want {
				t.Errorf("self binds present = (%t, %t), want %t", hasGroup, hasPasswd, tt.want)
			}
		})
	}
}

func TestBwrapNoGroupHostBinds(t *testing.T) {
	tests := []struct {
		name    string
		noGroup bool
		want    bool
	}{
		{"exposed when no_group is false", false, true},
		{"skipped when no_group is true", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Rootfs: bwrapRootfs(t), Home: "/home/user", NoGroup: tt.noGroup}
			args := bwrapBackend{}.Args(cfg, fakeHost{})

			hasPasswd := containsSeq(args, []string{"--ro-bind-try", "/etc/passwd", "/etc/passwd"})
			hasGroup := containsSeq(args, []string{"--ro-bind-try", "/etc/group", "/etc/group"})
			if hasPasswd != tt.want || hasGroup != tt.want {
				t.Errorf("host identity binds present = (%t, %t), want %t", hasPasswd, hasGroup, tt.want)
			}
		})
	}
}

func TestBwrapBaseArgs(t *testing.T) {
	rootfs := bwrapRootfs(t)
	cfg := &Config{Rootfs: rootfs, Home: "/home/user"}
	args := bwrapBackend{}.Args(cfg, fakeHost{})

	for _, seq := range [][]string{
		{"--unshare-user", "--share-net", "--bind", rootfs, "/", "--die-with-parent"},
		{"--ro-bind-try", "/etc/resolv.conf", "/etc/resolv.conf"},
		{"--dev-bind", "/dev", "/dev"},
		{"--ro-bind", "/sys", "/sys"},
		{"--bind-try", "/proc", "/proc"},
		{"--bind", "/home/user", "/home/user"},
		{"--bind", "/media", "/media"},
		{"--bind", "/mnt", "/mnt"},
		{"--setenv", "PATH", MinimalPath},
	} {
		if !containsSeq(args, seq) {
			t.Errorf("args missing sequence %v", seq)
		}
	}
}

func TestBwrapTriggersMtabRepair(t *testing.T) {
	rootfs := bwrapRootfs(t)
	cfg := &Config{Rootfs: rootfs, Home: "/home/user"}
	bwrapBackend{}.Args(cfg, fakeHost{})

	target, err := os.Readlink(filepath.Join(rootfs, "etc", "mtab"))
	if err != nil {
		t.Fatalf("mtab symlink not created: %v", err)
	}
	if target != mtabTarget {
		t.Errorf("mtab points at %q, want %q", target, mtabTarget)
	}
}

func TestDesktopBindsOnlyExisting(t *testing.T) {
	host := fakeHost{
		existing: map[string]bool{
			"/etc/fonts":       true,
			"/usr/share/fonts": true,
		},
		cursors: []string{"/usr/share/icons/Adwaita/cursors"},
	}

	t.Run(NameProot, func(t *testing.T) {
		cfg := &Config{Rootfs: "/rootfs"}
		args := prootBackend{}.Args(cfg, host)

		for _, want := range []string{
			"--bind=/etc/fonts",
			"--bind=/usr/share/fonts",
			"--bind=/usr/share/icons/Adwaita/cursors",
		} {
			if !slices.Contains(args, want) {
				t.Errorf("args missing %q", want)
			}
		}
		for _, absent := range []string{
			"--bind=/usr/share/themes",
			"--bind=/etc/asound.conf",
		} {
			if slices.Contains(args, absent) {
				t.Errorf("args contain %q for a path the host does not have", absent)
			}
		}
	})

	t.Run(NameBwrap, func(t *testing.T) {
		cfg := &Config{Rootfs: bwrapRootfs(t), Home: "/home/user"}
		args := bwrapBackend{}.Args(cfg, host)

		if !containsSeq(args, []string{"--ro-bind", "/etc/fonts", "/etc/fonts"}) {
			t.Error("args missing ro-bind of /etc/fonts")
		}
		if !containsSeq(args, []string{"--ro-bind", "/usr/share/icons/Adwaita/cursors", "/usr/share/icons/Adwaita/cursors"}) {
			t.Error("args missing ro-bind of the cursor directory")
		}
		if containsSeq(args, []string{"--ro-bind", "/usr/share/themes", "/usr/share/themes"}) {
			t.Error("args contain a ro-bind for a path the host does not have")
		}
	})
}

func TestIgnoreExtraBindSkipsDesktopPaths(t *testing.T) {
	host := fakeHost{
		existing: map[string]bool{"/etc/fonts": true},
		cursors:  []string{"/usr/share/icons/Adwaita/cursors"},
	}

	cfg := &Config{Rootfs: "/rootfs", IgnoreExtraBind: true}
	args := prootBackend{}.Args(cfg, host)
	if slices.Contains(args, "--bind=/etc/fonts") {
		t.Error("proot args contain desktop bind despite IgnoreExtraBind")
	}

	cfg = &Config{Rootfs: bwrapRootfs(t), Home: "/home/user", IgnoreExtraBind: true}
	bargs := bwrapBackend{}.Args(cfg, host)
	if containsSeq(bargs, []string{"--ro-bind", "/etc/fonts", "/etc/fonts"}) {
		t.Error("bwrap args contain desktop bind despite IgnoreExtraBind")
	}
}
