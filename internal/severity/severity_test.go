package severity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/schema"
)

func TestClassify(t *testing.T) {
	c := New(OverrideTable{
		"using weak cipher mode":            "low",
		"using broken SHA-1 hash algorithm": "medium",
	})

	tests := []struct {
		name     string
		category string
		desc     string
		declared string
		want     string
	}{
		{name: "override wins", category: schema.CategoryEncryption, desc: "using weak cipher mode", declared: "warn", want: "low"},
		{name: "override applies to every category", category: schema.CategoryMAC, desc: "using broken SHA-1 hash algorithm", declared: "fail", want: "medium"},
		{name: "no override keeps declared", category: schema.CategoryKEX, desc: "using small 1024-bit modulus", declared: "fail", want: "fail"},
		{name: "unknown label passes through", category: schema.CategoryKey, desc: "something new", declared: "critical", want: "critical"},
		{name: "empty label passes through", category: schema.CategoryKey, desc: "something new", declared: "", want: ""},
		{name: "match is exact", category: schema.CategoryEncryption, desc: "Using weak cipher mode", declared: "warn", want: "warn"},
		{name: "cve is always info", category: schema.CategoryCVE, desc: "using weak cipher mode", declared: "high", want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.category, tt.desc, tt.declared))
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	c := New(OverrideTable{"using weak cipher mode": "low"})
	f := schema.Finding{
		Target:      "h:22",
		Category:    schema.CategoryEncryption,
		Item:        "aes256-cbc",
		Description: "using weak cipher mode",
		Severity:    "warn",
	}

	once := c.Resolve(f)
	twice := c.Resolve(once)
	assert.Equal(t, "low", once.Severity)
	assert.Equal(t, once, twice)
	assert.Equal(t, "warn", f.Severity, "input must not be modified")
}

func TestNewCopiesTable(t *testing.T) {
	table := OverrideTable{"a": "high"}
	c := New(table)
	table["a"] = "low"
	table["b"] = "low"

	assert.Equal(t, "high", c.Classify(schema.CategoryMAC, "a", "info"))
	assert.Equal(t, "info", c.Classify(schema.CategoryMAC, "b", "info"))
	assert.Equal(t, 1, c.Len())
}

func TestNewNilTable(t *testing.T) {
	c := New(nil)
	assert.Equal(t, "warn", c.Classify(schema.CategoryKEX, "x", "warn"))
	assert.Zero(t, c.Len())
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yml")
	body := "overrides:\n" +
		"  \"using weak cipher mode\": low\n" +
		"  \"using broken & deprecated 3DES cipher\": medium\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	table, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, OverrideTable{
		"using weak cipher mode":                "low",
		"using broken & deprecated 3DES cipher": "medium",
	}, table)
}

func TestLoadOverridesKeepsCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yml")
	require.NoError(t, os.WriteFile(path, []byte("overrides:\n  \"using broken SHA-1 hash algorithm\": high\n"), 0o600))

	table, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Contains(t, table, "using broken SHA-1 hash algorithm")
}

func TestLoadOverridesEmpty(t *testing.T) {
	table, err := LoadOverrides("")
	require.NoError(t, err)
	assert.Empty(t, table)

	path := filepath.Join(t.TempDir(), "commented.yml")
	require.NoError(t, os.WriteFile(path, []byte("overrides:\n  # \"using weak cipher mode\": low\n"), 0o600))
	table, err = LoadOverrides(path)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestLoadOverridesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadOverrides(filepath.Join(dir, "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("overrides: [unterminated\n"), 0o600))
	_, err = LoadOverrides(bad)
	require.Error(t, err)

	empty := filepath.Join(dir, "empty-value.yml")
	require.NoError(t, os.WriteFile(empty, []byte("overrides:\n  \"x\": \"\"\n"), 0o600))
	_, err = LoadOverrides(empty)
	require.Error(t, err)
}

func TestSort(t *testing.T) {
	labels := []string{"fail", "zeta", "info", "high", "alpha", "warn", "low", "medium"}
	Sort(labels)
	assert.Equal(t, []string{"info", "low", "medium", "warn", "high", "fail", "alpha", "zeta"}, labels)
}

func TestRank(t *testing.T) {
	assert.Less(t, Rank("info"), Rank("low"))
	assert.Less(t, Rank("fail"), Rank("unknown-label"))
	assert.Equal(t, Rank("foo"), Rank("bar"))
}
