package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// TimestampLayout is appended to report file names.
const TimestampLayout = "20060102_150405"

// ListJSONFiles returns the non-directory *.json files directly inside dir,
// sorted by name. The extension match is case-sensitive and subdirectories
// are not descended into.
func ListJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ReportPath builds <dir>/<prefix>_<timestamp>.<ext>.
func ReportPath(dir, prefix, ext string, ts time.Time) string {
	name := safeName(prefix) + "_" + ts.Format(TimestampLayout) + "." + strings.TrimPrefix(ext, ".")
	return filepath.Join(dir, name)
}

// EnsureDir creates dir if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return nil
}

// safeName replaces characters not safe for file paths
func safeName(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, s)
}
