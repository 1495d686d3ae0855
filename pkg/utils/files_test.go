package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJSONFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "c.JSON", "readme.md", "d.json.gz"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	files, err := ListJSONFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
	}, files)
}

func TestListJSONFilesMissingDir(t *testing.T) {
	_, err := ListJSONFiles(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestReportPath(t *testing.T) {
	ts := time.Date(2024, 6, 7, 8, 9, 10, 0, time.Local)
	assert.Equal(t,
		filepath.Join("out", "SSH_Auditing_Results_20240607_080910.xlsx"),
		ReportPath("out", "SSH_Auditing_Results", "xlsx", ts))
	assert.Equal(t,
		filepath.Join("out", "a_b_c_20240607_080910.html"),
		ReportPath("out", "a/b:c", ".html", ts))
}

func TestEnsureDir(t *testing.T) {
	require.Error(t, EnsureDir(""))

	nested := filepath.Join(t.TempDir(), "one", "two")
	require.NoError(t, EnsureDir(nested))
	require.NoError(t, EnsureDir(nested))

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
