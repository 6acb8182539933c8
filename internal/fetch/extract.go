package fetch

import (
	"archive/tar"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Extract unpacks a compressed tar archive into dest, creating it if
// needed. The compression format is chosen by file extension: .gz, .xz,
// .zst/.zstd, or .lz4. Progress is reported over compressed bytes read.
func Extract(archive, dest string, report Progress) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	file, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil {
		return err
	}

	reader := &countingReader{
		r:      bufio.NewReaderSize(file, 64*1024),
		total:  fi.Size(),
		report: report,
	}

	var decoder io.Reader
	switch ext := strings.ToLower(filepath.Ext(archive)); ext {
	case ".gz", ".tgz":
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		decoder = gz
	case ".xz":
		xzr, err := xz.NewReader(reader)
		if err != nil {
			return fmt.Errorf("failed to open xz stream: %w", err)
		}
		decoder = xzr
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(reader)
		if err != nil {
			return fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer zr.Close()
		decoder = zr
	case ".lz4":
		decoder = lz4.NewReader(reader)
	default:
		return fmt.Errorf("unsupported archive format: %s", ext)
	}

	return unpack(tar.NewReader(decoder), dest)
}

// unpack writes a tar stream into dest, refusing entries that would
// escape it.
func unpack(tr *tar.Reader, dest string) error {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("corrupted archive: %w", err)
		}

		name := filepath.Clean(hdr.Name)
		if name == ".." || strings.HasPrefix(name, ".."+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", hdr.Name)
		}
		target := filepath.Join(dest, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		case tar.TypeLink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			_ = os.Remove(target)
			if err := os.Link(filepath.Join(dest, filepath.Clean(hdr.Linkname)), target); err != nil {
				return err
			}
		default:
			// Device nodes and the like need privileges a rootfs
			// bootstrap does not require. Skip them.
		}
	}
}
