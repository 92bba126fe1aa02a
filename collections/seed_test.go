package collections_test

import (
	"testing"

	"prepedido/collections"
	"prepedido/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	counts := map[string]int{
		"projects":          3,
		"works":             4,
		"activities":        4,
		"catalog_materials": 8,
		"levels":            2,
		"sublevels":         3,
		"families":          4,
		"materials":         5,
	}
	for name, want := range counts {
		col, _ := app.FindCollectionByNameOrId(name)
		records, err := app.FindAllRecords(col)
		if err != nil {
			t.Fatalf("query %s error: %v", name, err)
		}
		if len(records) != want {
			t.Errorf("expected %d %s, got %d", want, name, len(records))
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	materialsCol, _ := app.FindCollectionByNameOrId("materials")
	materials, _ := app.FindAllRecords(materialsCol)
	if len(materials) != 5 {
		t.Errorf("expected 5 materials after idempotent seed, got %d", len(materials))
	}
}

func TestSeed_MaterialDetails(t *testing.T) {
	app := testhelpers.NewSeededApp(t)

	r := testhelpers.FindMaterialRecord(t, app, "MAT-003")
	if r.GetString("name") != "Arena Gruesa" {
		t.Errorf("name = %q, want Arena Gruesa", r.GetString("name"))
	}
	if r.GetFloat("budget_quantity") != 50 || r.GetFloat("order_quantity") != 45 {
		t.Errorf("quantities = %v/%v, want 50/45", r.GetFloat("budget_quantity"), r.GetFloat("order_quantity"))
	}
	if r.GetString("status") != "in_approval" {
		t.Errorf("status = %q, want in_approval", r.GetString("status"))
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestProject(t, app, "99", "Proyecto Existente")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	levelsCol, _ := app.FindCollectionByNameOrId("levels")
	levels, _ := app.FindAllRecords(levelsCol)
	if len(levels) != 0 {
		t.Errorf("expected seed to be skipped, found %d levels", len(levels))
	}
}
