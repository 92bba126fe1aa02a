package services

import (
	"testing"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_PreOrder(t *testing.T) {
	data := BuildExportData(exportTree(), 80, ExportHeader{
		Title:       "Prepedido Torre Norte",
		Project:     "Torre Residencial Norte",
		Work:        "Estructura Principal",
		Activity:    "Columnas y Vigas",
		CreatedDate: "18/10/2026",
	})

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Prepedido Torre Norte" {
		t.Fatalf("expected sheet name 'Prepedido Torre Norte', got %v", sheets)
	}
	sheet := sheets[0]

	title, _ := f.GetCellValue(sheet, "A1")
	if title != "Prepedido Torre Norte" {
		t.Errorf("title = %q", title)
	}
	filters, _ := f.GetCellValue(sheet, "A2")
	if filters != "Proyecto: Torre Residencial Norte · Trabajo: Estructura Principal · Actividad: Columnas y Vigas" {
		t.Errorf("filters = %q", filters)
	}
	header, _ := f.GetCellValue(sheet, "H5")
	if header != "Total (Prepedido)" {
		t.Errorf("H5 = %q", header)
	}

	// Row 6 is the level, row 8 the family, row 9 the first material.
	levelTotal, _ := f.GetCellValue(sheet, "H6")
	if levelTotal != "$19.575.000" {
		t.Errorf("level order total = %q", levelTotal)
	}
	familyDesc, _ := f.GetCellValue(sheet, "C8")
	if familyDesc != "    FAMILIA - Concretos" {
		t.Errorf("family desc = %q", familyDesc)
	}
	code, _ := f.GetCellValue(sheet, "B9")
	if code != "MAT-001" {
		t.Errorf("material code = %q", code)
	}
	status, _ := f.GetCellValue(sheet, "J9")
	if status != "Aprobado" {
		t.Errorf("material status = %q", status)
	}

	// 5 data rows (6-10), blank row 11, summary from row 12.
	label, _ := f.GetCellValue(sheet, "G14")
	value, _ := f.GetCellValue(sheet, "H14")
	if label != "$/Apto (Prepedido):" || value != "$244.688" {
		t.Errorf("per apartment summary = %q %q", label, value)
	}
}

func TestGenerateExcel_EmptyItems(t *testing.T) {
	data := ExportData{
		Title:       "Vacío",
		CreatedDate: "18/10/2026",
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestExcelSheetName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty falls back", "", "Prepedido"},
		{"short kept", "Obra 1", "Obra 1"},
		{"invalid characters dropped", "Torre [A]: 1/2", "Torre A 12"},
		{"only invalid", "[]", "Prepedido"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excelSheetName(tt.input); got != tt.want {
				t.Errorf("excelSheetName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	long := excelSheetName("📋 Prepedido - Estimación de Materiales de Obra Gris")
	if utf8.RuneCountInString(long) > 31 || !utf8.ValidString(long) {
		t.Errorf("long title not trimmed safely: %q", long)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Arena Gruesa", "Arena Gruesa"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"starts with minus", "-100", "'-100"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.input); got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterLine(t *testing.T) {
	if got := filterLine(ExportData{}); got != "" {
		t.Errorf("filterLine(empty) = %q", got)
	}
	if got := filterLine(ExportData{Project: "P"}); got != "Proyecto: P" {
		t.Errorf("filterLine(project) = %q", got)
	}
}
