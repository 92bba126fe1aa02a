package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel workbook of the pre-order and returns the
// file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are limited to 31 characters.
	sheetName := excelSheetName(data.Title)

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	lastCol := columns[len(columns)-1]

	widths := []float64{9, 11, 38, 10, 13, 14, 13, 18, 18, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// One style per section depth, lighter as we go down.
	sectionFills := map[RowKind]string{
		RowLevel:    "#D9E1F2",
		RowSublevel: "#E7ECF7",
		RowFamily:   "#F3F5FB",
	}
	sectionStyles := make(map[RowKind]int, len(sectionFills))
	for kind, color := range sectionFills {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 10},
			Fill: excelize.Fill{
				Type:    "pattern",
				Color:   []string{color},
				Pattern: 1,
			},
			Border: thinBorders(),
		})
		if err != nil {
			return nil, fmt.Errorf("create section style: %w", err)
		}
		sectionStyles[kind] = id
	}

	materialStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create material style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if filters := filterLine(data); filters != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge filters: %w", err)
		}
		f.SetCellValue(sheetName, "A2", sanitizeExcelCell(filters))
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Fecha: %s · APTOS: %d", data.CreatedDate, data.ApartmentCount))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	headers := []string{"#", "Código", "Material", "Unidad", "Cant. presup.", "Valor unit.", "Cant. a pedir", "Total (Prepedido)", "Total (Presupuesto)", "Estado"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	row := 6
	for _, r := range data.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, r.Index)

		if r.Kind == RowMaterial {
			f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Code))
			f.SetCellValue(sheetName, "C"+rowStr, "      "+sanitizeExcelCell(r.Description))
			f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Unit))
			f.SetCellValue(sheetName, "E"+rowStr, r.BudgetQty)
			f.SetCellValue(sheetName, "F"+rowStr, FormatCOP(r.UnitPrice))
			f.SetCellValue(sheetName, "G"+rowStr, r.OrderQty)
			f.SetCellValue(sheetName, "J"+rowStr, r.Status)
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, materialStyle)
		} else {
			f.SetCellValue(sheetName, "C"+rowStr, strings.Repeat("  ", int(r.Kind))+sanitizeExcelCell(r.Description))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyles[r.Kind])
		}
		f.SetCellValue(sheetName, "H"+rowStr, FormatCOP(r.OrderTotal))
		f.SetCellValue(sheetName, "I"+rowStr, FormatCOP(r.BudgetTotal))

		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++

	summary := []struct {
		label string
		value string
	}{
		{"Total (Prepedido):", FormatCOP(data.Totals.Order)},
		{"Total (Presupuesto):", FormatCOP(data.Totals.Budget)},
		{"$/Apto (Prepedido):", FormatCOP(data.PerApartment.Order)},
		{"$/Apto (Presupuesto):", FormatCOP(data.PerApartment.Budget)},
		{"Materiales:", fmt.Sprintf("%d", data.MaterialCount)},
	}
	for _, s := range summary {
		summaryRow := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "G"+summaryRow, s.label)
		f.SetCellStyle(sheetName, "G"+summaryRow, "G"+summaryRow, summaryLabelStyle)
		f.SetCellValue(sheetName, "H"+summaryRow, s.value)
		f.SetCellStyle(sheetName, "H"+summaryRow, "H"+summaryRow, summaryValueStyle)
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// excelSheetName trims title to Excel's 31-character limit without
// splitting a multi-byte character.
func excelSheetName(title string) string {
	title = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return -1
		}
		return r
	}, title)
	r := []rune(title)
	if len(r) > 31 {
		r = r[:31]
	}
	name := strings.TrimSpace(string(r))
	if name == "" {
		return "Prepedido"
	}
	return name
}

// filterLine renders the selected project, work and activity.
func filterLine(data ExportData) string {
	var parts []string
	if data.Project != "" {
		parts = append(parts, "Proyecto: "+data.Project)
	}
	if data.Work != "" {
		parts = append(parts, "Trabajo: "+data.Work)
	}
	if data.Activity != "" {
		parts = append(parts, "Actividad: "+data.Activity)
	}
	return strings.Join(parts, " · ")
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
