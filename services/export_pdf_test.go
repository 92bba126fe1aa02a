package services

import (
	"testing"
)

func TestGeneratePDF_PreOrder(t *testing.T) {
	data := BuildExportData(exportTree(), 80, ExportHeader{
		Title:       "Prepedido PDF",
		Project:     "Torre Residencial Norte",
		CreatedDate: "18/10/2026",
	})

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) < 5 {
		t.Fatal("GeneratePDF() returned too few bytes")
	}
	if string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyItems(t *testing.T) {
	data := ExportData{
		Title:       "Vacío",
		CreatedDate: "18/10/2026",
	}

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestPDFColumnsFillGrid(t *testing.T) {
	total := 0
	for _, c := range pdfColumns {
		total += c.width
	}
	if total != 12 {
		t.Errorf("pdf columns span %d units, want 12", total)
	}
}
