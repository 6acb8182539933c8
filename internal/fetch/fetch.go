// Package fetch acquires external resources: release binaries and
// rootfs bootstrap archives. Callers supply a Progress callback to
// drive their own progress display.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Progress receives the number of bytes processed so far and the total
// expected, or -1 when the total is unknown.
type Progress func(done, total int64)

// countingReader reports read progress to a Progress callback.
type countingReader struct {
	r      io.Reader
	done   int64
	total  int64
	report Progress
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.done += int64(n)
		if c.report != nil {
			c.report(c.done, c.total)
		}
	}
	return n, err
}

// Download fetches url into dest/filename. The destination directory is
// created if absent, and an already-present file skips the download
// entirely, so repeated calls are idempotent.
func Download(url, dest, filename string, report Progress) error {
	savePath := filepath.Join(dest, filename)

	if _, err := os.Stat(savePath); err == nil {
		return nil
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: %s", url, resp.Status)
	}

	// Write to a temp name first so an interrupted download is never
	// mistaken for a complete file on the next run.
	tmp, err := os.CreateTemp(dest, filename+".partial-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	reader := &countingReader{r: resp.Body, total: resp.ContentLength, report: report}
	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), savePath)
}
