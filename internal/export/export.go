// Package export writes the overlay's raster to timestamped files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileName builds "<prefix>-<epoch-ms>.<ext>".
func FileName(prefix string, at time.Time, ext string) string {
	return fmt.Sprintf("%s-%d.%s", prefix, at.UnixMilli(), ext)
}

// Write creates dir/name and fills it with encode. The file is removed
// again if encoding fails.
func Write(dir, name string, encode func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
