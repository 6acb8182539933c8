package fetch

import (
	"archive/tar"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

type tarEntry struct {
	name     string
	typeflag byte
	content  string
	linkname string
	mode     int64
}

func writeTarGz(t *testing.T, path string, entries []tarEntry) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	tw := tar.NewWriter(gz)

	for _, entry := range entries {
		hdr := &tar.Header{
			Name:     entry.name,
			Typeflag: entry.typeflag,
			Linkname: entry.linkname,
			Mode:     entry.mode,
			Size:     int64(len(entry.content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if entry.typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(entry.content)); err != nil {
				t.Fatal(err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractGzip(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "rootfs.tar.gz")
	writeTarGz(t, archive, []tarEntry{
		{name: "etc", typeflag: tar.TypeDir, mode: 0o755},
		{name: "etc/os-release", typeflag: tar.TypeReg, content: "ID=arch\n", mode: 0o644},
		{name: "bin", typeflag: tar.TypeDir, mode: 0o755},
		{name: "bin/sh", typeflag: tar.TypeReg, content: "#!/bin/sh\n", mode: 0o755},
		{name: "usr/bin/sh", typeflag: tar.TypeSymlink, linkname: "/bin/sh", mode: 0o777},
	})

	dest := filepath.Join(t.TempDir(), "rootfs")

	var reported bool
	if err := Extract(archive, dest, func(_, _ int64) { reported = true }); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "etc", "os-release"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(data) != "ID=arch\n" {
		t.Errorf("extracted content = %q, want %q", data, "ID=arch\n")
	}

	fi, err := os.Stat(filepath.Join(dest, "bin", "sh"))
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o755 {
		t.Errorf("file mode = %o, want 755", fi.Mode().Perm())
	}

	link, err := os.Readlink(filepath.Join(dest, "usr", "bin", "sh"))
	if err != nil {
		t.Fatalf("symlink missing: %v", err)
	}
	if link != "/bin/sh" {
		t.Errorf("symlink target = %q, want /bin/sh", link)
	}

	if !reported {
		t.Error("progress callback never invoked")
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "rootfs.tar.rar")
	if err := os.WriteFile(archive, []byte("not an archive"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Extract(archive, t.TempDir(), nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported archive format") {
		t.Errorf("Extract error = %v, want unsupported format", err)
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.tar.gz")
	writeTarGz(t, archive, []tarEntry{
		{name: "../evil", typeflag: tar.TypeReg, content: "pwned", mode: 0o644},
	})

	parent := t.TempDir()
	dest := filepath.Join(parent, "rootfs")
	if err := Extract(archive, dest, nil); err == nil {
		t.Fatal("Extract accepted an entry escaping the destination")
	}
	if _, err := os.Stat(filepath.Join(parent, "evil")); !os.IsNotExist(err) {
		t.Error("escaping entry was written outside the destination")
	}
}

func TestExtractMissingArchive(t *testing.T) {
	if err := Extract(filepath.Join(t.TempDir(), "nope.tar.gz"), t.TempDir(), nil); err == nil {
		t.Fatal("Extract succeeded on a missing archive")
	}
}
