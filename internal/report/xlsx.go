package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/aggregate"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/schema"
)

const (
	SheetDetailed = "Detailed"
	SheetSummary  = "Summary"

	// excelize rejects wider columns
	maxColumnWidth = 255
)

// DetailedHeader is the header row of the Detailed sheet.
var DetailedHeader = []string{"Target", "Category", "Item", "Description", "Audit"}

// ColorFor maps a severity label to an RGB fill. Unknown labels are white.
func ColorFor(sev string) string {
	switch sev {
	case "info":
		return "ADD8E6"
	case "low":
		return "FFFF00"
	case "medium", "warn":
		return "FFA500"
	case "high", "fail":
		return "FF0000"
	default:
		return "FFFFFF"
	}
}

// GenerateXLSX writes the workbook to path.
func GenerateXLSX(findings []schema.Finding, m aggregate.Matrix, path string) (string, error) {
	f, err := buildWorkbook(findings, m)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteWorkbook streams the workbook to w.
func WriteWorkbook(w io.Writer, findings []schema.Finding, m aggregate.Matrix) error {
	f, err := buildWorkbook(findings, m)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(findings []schema.Finding, m aggregate.Matrix) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetDetailed); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeDetailed(f, findings); err != nil {
		f.Close()
		return nil, fmt.Errorf("detailed sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummary(f, m); err != nil {
		f.Close()
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeDetailed(f *excelize.File, findings []schema.Finding) error {
	if err := setRow(f, SheetDetailed, 1, DetailedHeader); err != nil {
		return err
	}

	widths := make([]int, len(DetailedHeader))
	for i, h := range DetailedHeader {
		widths[i] = utf8.RuneCountInString(h)
	}

	styles := map[string]int{}
	for i, fd := range findings {
		row := i + 2
		cells := []string{fd.Target, fd.Category, fd.Item, fd.Description, fd.Severity}
		if err := setRow(f, SheetDetailed, row, cells); err != nil {
			return err
		}

		color := ColorFor(fd.Severity)
		style, ok := styles[color]
		if !ok {
			var err error
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			})
			if err != nil {
				return fmt.Errorf("fill style %s: %w", color, err)
			}
			styles[color] = style
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(cells), row)
		if err := f.SetCellStyle(SheetDetailed, first, last, style); err != nil {
			return err
		}

		for j, c := range cells {
			if n := utf8.RuneCountInString(c); n > widths[j] {
				widths[j] = n
			}
		}
	}

	for j, w := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetDetailed, col, col, float64(min(w+2, maxColumnWidth))); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(DetailedHeader), len(findings)+1)
	if err != nil {
		return err
	}
	return f.AutoFilter(SheetDetailed, "A1:"+last, nil)
}

func writeSummary(f *excelize.File, m aggregate.Matrix) error {
	header := append([]string{"Target"}, m.Severities...)
	if err := setRow(f, SheetSummary, 1, header); err != nil {
		return err
	}

	for i, target := range m.Targets {
		row := make([]interface{}, 0, len(header))
		row = append(row, target)
		for _, sev := range m.Severities {
			row = append(row, m.Count(target, sev))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
