package collections_test

import (
	"testing"

	"prepedido/collections"
	"prepedido/estimate"
	"prepedido/testhelpers"
)

func TestImportCatalog_UpsertsByCode(t *testing.T) {
	app := testhelpers.NewSeededApp(t)

	created, updated, err := collections.ImportCatalog(app, []estimate.CatalogEntry{
		{Code: "MAT-001", Name: "Cemento Portland Tipo I", Unit: "Sacos", UnitPrice: 36500},
		{Code: "MAT-009", Name: "Impermeabilizante", Unit: "Galones", UnitPrice: 64000},
	})
	if err != nil {
		t.Fatalf("ImportCatalog() error: %v", err)
	}
	if created != 1 || updated != 1 {
		t.Errorf("created=%d updated=%d, want 1 and 1", created, updated)
	}

	entries, err := collections.LoadCatalog(app)
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	if len(entries) != 9 {
		t.Fatalf("expected 9 catalog entries, got %d", len(entries))
	}
	if entries[0].Code != "MAT-001" || entries[0].UnitPrice != 36500 {
		t.Errorf("updated entry should keep its position: %+v", entries[0])
	}
	if last := entries[8]; last.Code != "MAT-009" || last.Unit != "Galones" {
		t.Errorf("new entry should be appended: %+v", last)
	}
}

func TestImportCatalog_EmptyCollection(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	created, _, err := collections.ImportCatalog(app, []estimate.CatalogEntry{
		{Code: "MAT-001", Name: "Cemento", Unit: "Sacos", UnitPrice: 35000},
	})
	if err != nil {
		t.Fatalf("ImportCatalog() error: %v", err)
	}
	if created != 1 {
		t.Errorf("created = %d, want 1", created)
	}
}
