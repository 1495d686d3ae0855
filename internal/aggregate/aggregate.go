package aggregate

import (
	"sort"

	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/schema"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/severity"
)

// Dedupe drops repeated findings. Two findings are the same when every field
// matches. First occurrences keep their relative order.
func Dedupe(findings []schema.Finding) []schema.Finding {
	seen := make(map[schema.Finding]struct{}, len(findings))
	out := make([]schema.Finding, 0, len(findings))
	for _, f := range findings {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// SortFindings sorts findings for display: target, category, item,
// severity rank, description.
func SortFindings(findings []schema.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Item != b.Item {
			return a.Item < b.Item
		}
		if ra, rb := severity.Rank(a.Severity), severity.Rank(b.Severity); ra != rb {
			return ra < rb
		}
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		return a.Description < b.Description
	})
}

// Matrix counts findings per target and severity.
type Matrix struct {
	Targets    []string
	Severities []string
	counts     map[string]map[string]int
}

// Summarize builds the target x severity matrix. Pass deduplicated findings;
// every finding counts once.
func Summarize(findings []schema.Finding) Matrix {
	m := Matrix{counts: map[string]map[string]int{}}
	sevs := map[string]struct{}{}

	for _, f := range findings {
		row, ok := m.counts[f.Target]
		if !ok {
			row = map[string]int{}
			m.counts[f.Target] = row
			m.Targets = append(m.Targets, f.Target)
		}
		row[f.Severity]++
		if _, ok := sevs[f.Severity]; !ok {
			sevs[f.Severity] = struct{}{}
			m.Severities = append(m.Severities, f.Severity)
		}
	}

	sort.Strings(m.Targets)
	severity.Sort(m.Severities)
	return m
}

// Count returns the number of findings for target with the given severity.
func (m Matrix) Count(target, sev string) int {
	return m.counts[target][sev]
}

// RowTotal returns the number of findings for target.
func (m Matrix) RowTotal(target string) int {
	total := 0
	for _, c := range m.counts[target] {
		total += c
	}
	return total
}

// ColumnTotal returns the number of findings with the given severity.
func (m Matrix) ColumnTotal(sev string) int {
	total := 0
	for _, row := range m.counts {
		total += row[sev]
	}
	return total
}

// Total returns the number of findings counted.
func (m Matrix) Total() int {
	total := 0
	for _, t := range m.Targets {
		total += m.RowTotal(t)
	}
	return total
}
