package services

import (
	"testing"

	"prepedido/estimate"
)

func exportTree() estimate.Tree {
	return estimate.Tree{Levels: []estimate.Level{
		{ID: "nivel5-1", Name: "Estructura de Concreto", Depth: 5, Sublevels: []estimate.Sublevel{
			{ID: "nivel8-1", Name: "Columnas y Vigas", Depth: 8, Families: []estimate.Family{
				{ID: "familia-1", Name: "Concretos", Materials: []estimate.Material{
					{ID: "m1", Code: "MAT-001", Name: "Cemento Portland Tipo I", Unit: "Sacos", BudgetQuantity: 500, UnitPrice: 35000, OrderQuantity: 450, Status: estimate.StatusApproved},
					{ID: "m3", Code: "MAT-003", Name: "Arena Gruesa", Unit: "m³", BudgetQuantity: 50, UnitPrice: 85000, OrderQuantity: 45, Status: estimate.StatusInApproval},
				}},
			}},
		}},
	}}
}

func TestBuildExportData_RowsInDisplayOrder(t *testing.T) {
	data := BuildExportData(exportTree(), 80, ExportHeader{Title: "Prepedido", CreatedDate: "18/10/2026"})

	want := []struct {
		kind  RowKind
		index string
		desc  string
	}{
		{RowLevel, "1", "NIVEL 5 - Estructura de Concreto"},
		{RowSublevel, "1.1", "NIVEL 8 - Columnas y Vigas"},
		{RowFamily, "1.1.1", "FAMILIA - Concretos"},
		{RowMaterial, "1.1.1.1", "Cemento Portland Tipo I"},
		{RowMaterial, "1.1.1.2", "Arena Gruesa"},
	}
	if len(data.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(data.Rows))
	}
	for i, w := range want {
		r := data.Rows[i]
		if r.Kind != w.kind || r.Index != w.index || r.Description != w.desc {
			t.Errorf("row %d = {%d %q %q}, want {%d %q %q}", i, r.Kind, r.Index, r.Description, w.kind, w.index, w.desc)
		}
	}

	if data.Rows[3].OrderTotal != 15750000 || data.Rows[3].Status != "Aprobado" {
		t.Errorf("unexpected material row: %+v", data.Rows[3])
	}
	if data.Rows[2].OrderTotal != 19575000 || data.Rows[2].BudgetTotal != 21750000 {
		t.Errorf("unexpected family totals: %+v", data.Rows[2])
	}
}

func TestBuildExportData_Totals(t *testing.T) {
	data := BuildExportData(exportTree(), 80, ExportHeader{})

	if data.Totals.Order != 19575000 || data.Totals.Budget != 21750000 {
		t.Errorf("Totals = %+v", data.Totals)
	}
	if data.PerApartment.Order != 244687.5 {
		t.Errorf("PerApartment.Order = %v, want 244687.5", data.PerApartment.Order)
	}
	if data.MaterialCount != 2 {
		t.Errorf("MaterialCount = %d, want 2", data.MaterialCount)
	}
}

func TestBuildExportData_ZeroApartments(t *testing.T) {
	data := BuildExportData(exportTree(), 0, ExportHeader{})
	if data.PerApartment.Order != 0 || data.PerApartment.Budget != 0 {
		t.Errorf("PerApartment = %+v, want zero", data.PerApartment)
	}
}

func TestBuildExportData_EmptyTree(t *testing.T) {
	data := BuildExportData(estimate.Tree{}, 80, ExportHeader{})
	if len(data.Rows) != 0 || data.Totals != (Totals{}) {
		t.Errorf("expected empty export, got %+v", data)
	}
}
