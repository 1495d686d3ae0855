package severity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/schema"
)

// OverrideTable forces a severity for findings whose description matches a
// key exactly.
type OverrideTable map[string]string

// Classifier resolves the final severity of a finding. Labels are opaque
// strings: anything ssh-audit reports that has no override passes through.
type Classifier struct {
	overrides OverrideTable
}

// New returns a Classifier using a private copy of overrides.
func New(overrides OverrideTable) *Classifier {
	c := &Classifier{overrides: make(OverrideTable, len(overrides))}
	for desc, sev := range overrides {
		c.overrides[desc] = sev
	}
	return c
}

// Classify returns the final label for a finding. CVEs are always info.
func (c *Classifier) Classify(category, description, declared string) string {
	if category == schema.CategoryCVE {
		return schema.SeverityInfo
	}
	if sev, ok := c.overrides[description]; ok {
		return sev
	}
	return declared
}

// Resolve returns f with its severity classified.
func (c *Classifier) Resolve(f schema.Finding) schema.Finding {
	f.Severity = c.Classify(f.Category, f.Description, f.Severity)
	return f
}

// Len reports how many overrides are configured.
func (c *Classifier) Len() int { return len(c.overrides) }

// LoadOverrides reads an override table from YAML:
//
//	overrides:
//	  "using weak cipher mode": low
//	  "using small 1024-bit modulus": medium
//
// An empty path yields an empty table.
func LoadOverrides(path string) (OverrideTable, error) {
	if path == "" {
		return OverrideTable{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("override file %s does not exist", path)
		}
		return nil, fmt.Errorf("read override file: %w", err)
	}

	var raw struct {
		Overrides map[string]string `yaml:"overrides"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse override file %s: %w", path, err)
	}

	table := OverrideTable{}
	for desc, sev := range raw.Overrides {
		if sev == "" {
			return nil, fmt.Errorf("override for %q has an empty severity", desc)
		}
		table[desc] = sev
	}
	return table, nil
}

var order = map[string]int{
	"info":   0,
	"low":    1,
	"medium": 2,
	"warn":   3,
	"high":   4,
	"fail":   5,
}

// Rank orders labels for display. Unknown labels rank after every known one.
func Rank(label string) int {
	if r, ok := order[label]; ok {
		return r
	}
	return len(order)
}

// Sort orders labels by Rank, breaking ties alphabetically.
func Sort(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		ri, rj := Rank(labels[i]), Rank(labels[j])
		if ri != rj {
			return ri < rj
		}
		return labels[i] < labels[j]
	})
}
