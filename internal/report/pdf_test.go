package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePDFWithoutChrome(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	got, err := GeneratePDF(context.Background(), filepath.Join(t.TempDir(), "report.html"))
	require.ErrorIs(t, err, ErrChromeNotFound)
	assert.Empty(t, got)
}
