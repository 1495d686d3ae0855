package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/aggregate"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/schema"
)

//go:embed templates/report.html
var reportHTMLTemplate string

// ---------- Public API ----------

// GenerateHTML renders the findings and summary as a standalone HTML page.
func GenerateHTML(findings []schema.Finding, m aggregate.Matrix, path string) (string, error) {
	vm := buildViewModel(findings, m, time.Now())

	tmpl, err := template.New("report").Parse(reportHTMLTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vm); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ---------- View Model & helpers ----------

type viewModel struct {
	GeneratedAt   string
	TotalFindings int
	Targets       int
	Severities    []string
	Summary       []summaryRow
	Totals        []int
	Findings      []findingRow
	Generator     string
	Year          int
}

type summaryRow struct {
	Target string
	Counts []int
	Total  int
}

type findingRow struct {
	Target      string
	Category    string
	Item        string
	Description string
	Severity    string
	Class       string
}

func buildViewModel(findings []schema.Finding, m aggregate.Matrix, now time.Time) viewModel {
	rows := make([]findingRow, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, findingRow{
			Target:      emptyFallback(f.Target, "-"),
			Category:    f.Category,
			Item:        emptyFallback(f.Item, "N/A"),
			Description: trimTo(f.Description, 500),
			Severity:    f.Severity,
			Class:       severityClass(f.Severity),
		})
	}

	summary := make([]summaryRow, 0, len(m.Targets))
	for _, t := range m.Targets {
		r := summaryRow{Target: emptyFallback(t, "-"), Total: m.RowTotal(t)}
		for _, sev := range m.Severities {
			r.Counts = append(r.Counts, m.Count(t, sev))
		}
		summary = append(summary, r)
	}

	totals := make([]int, 0, len(m.Severities))
	for _, sev := range m.Severities {
		totals = append(totals, m.ColumnTotal(sev))
	}

	return viewModel{
		GeneratedAt:   now.Format(time.RFC3339),
		TotalFindings: m.Total(),
		Targets:       len(m.Targets),
		Severities:    m.Severities,
		Summary:       summary,
		Totals:        totals,
		Findings:      rows,
		Generator:     "ssh-audit-report",
		Year:          now.Year(),
	}
}

// severityClass buckets labels into the CSS classes used by the template.
// The buckets follow ColorFor.
func severityClass(sev string) string {
	switch ColorFor(sev) {
	case "ADD8E6":
		return "sev-info"
	case "FFFF00":
		return "sev-low"
	case "FFA500":
		return "sev-medium"
	case "FF0000":
		return "sev-high"
	default:
		return "sev-unknown"
	}
}

func trimTo(s string, n int) string {
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n]) + "…"
}

func emptyFallback(s, fb string) string {
	if strings.TrimSpace(s) == "" {
		return fb
	}
	return s
}
