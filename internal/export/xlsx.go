package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"claimdesk/internal/claim"
	"claimdesk/internal/render"
)

const (
	summarySheet = "Summary"
	fieldsSheet  = "Fields"
)

// XLSX writes a workbook with a Summary sheet (route, reasoning, alerts) and
// a Fields sheet holding the same slots the terminal shows.
func XLSX(a *claim.Analysis, dir string, now time.Time) (path string, err error) {
	if a == nil {
		return "", ErrNoAnalysis
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(fieldsSheet); err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("create style: %w", err)
	}

	summary := [][]string{
		{"Recommended Route", a.RecommendedRoute.String()},
		{"Reasoning", a.Reasoning},
		{"Missing Fields", strings.Join(a.MissingFields, ", ")},
		{"Inconsistencies", strings.Join(a.InconsistentFields, ", ")},
		{"Exported At", now.UTC().Format(time.RFC3339)},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return "", err
	}

	rows := [][]string{{"Field", "Value", "Source"}}
	for _, s := range render.Slots(a) {
		source := "extracted"
		if s.Fallback {
			source = "fallback"
		}
		rows = append(rows, []string{s.Label, s.Value, source})
	}
	if err := writeRows(f, fieldsSheet, rows); err != nil {
		return "", err
	}
	if err := f.SetCellStyle(fieldsSheet, "A1", "C1", bold); err != nil {
		return "", fmt.Errorf("style header: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return "", fmt.Errorf("style labels: %w", err)
	}
	for sheet, width := range map[string]float64{summarySheet: 80, fieldsSheet: 60} {
		if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
			return "", fmt.Errorf("set column width: %w", err)
		}
		if err := f.SetColWidth(sheet, "B", "B", width); err != nil {
			return "", fmt.Errorf("set column width: %w", err)
		}
	}

	path, err = prepare(dir, FileName(FormatXLSX, now))
	if err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
