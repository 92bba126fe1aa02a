package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	key       string
	code      string
	name      string
	unit      string
	budgetQty float64
	unitPrice float64
	orderQty  float64
	status    string
}

type familyDef struct {
	key       string
	name      string
	materials []materialDef
}

type sublevelDef struct {
	key      string
	name     string
	depth    int
	families []familyDef
}

type levelDef struct {
	key       string
	name      string
	depth     int
	sublevels []sublevelDef
}

type lookupDef struct {
	key    string
	name   string
	parent string
}

type catalogDef struct {
	code      string
	name      string
	unit      string
	unitPrice float64
}

// ── Fixture data ─────────────────────────────────────────────────────────

var seedProjects = []lookupDef{
	{key: "1", name: "Torre Residencial Norte"},
	{key: "2", name: "Centro Comercial Plaza Sur"},
	{key: "3", name: "Edificio Corporativo ABC"},
}

var seedWorks = []lookupDef{
	{key: "1", name: "Estructura Principal", parent: "1"},
	{key: "2", name: "Acabados Interiores", parent: "1"},
	{key: "3", name: "Instalaciones", parent: "2"},
	{key: "4", name: "Fachada", parent: "3"},
}

var seedActivities = []lookupDef{
	{key: "1", name: "Cimentación", parent: "1"},
	{key: "2", name: "Columnas y Vigas", parent: "1"},
	{key: "3", name: "Losas", parent: "1"},
	{key: "4", name: "Pisos y Revestimientos", parent: "2"},
}

var seedCatalog = []catalogDef{
	{"MAT-001", "Cemento Portland Tipo I", "Sacos", 35000},
	{"MAT-002", "Varilla Corrugada 1/2\"", "Unidades", 18500},
	{"MAT-003", "Arena Gruesa", "m³", 85000},
	{"MAT-004", "Malla Electrosoldada 6x6", "m²", 12500},
	{"MAT-005", "Grava Triturada", "m³", 95000},
	{"MAT-006", "Ladrillo Común", "Unidades", 800},
	{"MAT-007", "Bloque de Concreto", "Unidades", 1200},
	{"MAT-008", "Cal Hidratada", "Sacos", 8500},
}

var seedLevels = []levelDef{
	{
		key: "nivel5-1", name: "Estructura de Concreto", depth: 5,
		sublevels: []sublevelDef{
			{
				key: "nivel8-1", name: "Columnas y Vigas", depth: 8,
				families: []familyDef{
					{
						key: "familia-1", name: "Concretos",
						materials: []materialDef{
							{
								key: "MAT-001", code: "MAT-001", name: "Cemento Portland Tipo I", unit: "Sacos",
								budgetQty: 500, unitPrice: 35000, orderQty: 450, status: "approved",
							},
							{
								key: "MAT-003", code: "MAT-003", name: "Arena Gruesa", unit: "m³",
								budgetQty: 50, unitPrice: 85000, orderQty: 45, status: "in_approval",
							},
						},
					},
					{
						key: "familia-2", name: "Acero de Refuerzo",
						materials: []materialDef{
							{
								key: "MAT-002", code: "MAT-002", name: "Varilla Corrugada 1/2\"", unit: "Unidades",
								budgetQty: 200, unitPrice: 18500, orderQty: 180, status: "pending",
							},
						},
					},
				},
			},
			{
				key: "nivel8-2", name: "Losas y Entrepisos", depth: 8,
				families: []familyDef{
					{
						key: "familia-3", name: "Mallas y Refuerzos",
						materials: []materialDef{
							{
								key: "MAT-004", code: "MAT-004", name: "Malla Electrosoldada 6x6", unit: "m²",
								budgetQty: 300, unitPrice: 12500, orderQty: 280, status: "in_approval",
							},
						},
					},
				},
			},
		},
	},
	{
		key: "nivel5-2", name: "Mampostería y Acabados", depth: 5,
		sublevels: []sublevelDef{
			{
				key: "nivel8-3", name: "Muros y Divisiones", depth: 8,
				families: []familyDef{
					{
						key: "familia-4", name: "Mampostería",
						materials: []materialDef{
							{
								key: "MAT-005", code: "MAT-005", name: "Bloque de Concreto 15x20x40", unit: "Unidades",
								budgetQty: 800, unitPrice: 2500, orderQty: 750, status: "approved",
							},
						},
					},
				},
			},
		},
	},
}

// Seed populates the lookup, catalog and material-tree collections with the
// demo pre-order. It is safe to call on every startup because it returns
// early if any project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	cols := map[string]*core.Collection{}
	for _, name := range []string{"works", "activities", "catalog_materials", "levels", "sublevels", "families", "materials"} {
		c, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			return fmt.Errorf("seed: could not find %s collection: %w", name, err)
		}
		cols[name] = c
	}

	// ── lookups ──────────────────────────────────────────────────────
	projectIDs := map[string]string{}
	for i, p := range seedProjects {
		r := core.NewRecord(projectsCol)
		r.Set("key", p.key)
		r.Set("name", p.name)
		r.Set("sort_order", i+1)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: create project %q: %w", p.name, err)
		}
		projectIDs[p.key] = r.Id
	}

	workIDs := map[string]string{}
	for i, w := range seedWorks {
		r := core.NewRecord(cols["works"])
		r.Set("project", projectIDs[w.parent])
		r.Set("key", w.key)
		r.Set("name", w.name)
		r.Set("sort_order", i+1)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: create work %q: %w", w.name, err)
		}
		workIDs[w.key] = r.Id
	}

	for i, a := range seedActivities {
		r := core.NewRecord(cols["activities"])
		r.Set("work", workIDs[a.parent])
		r.Set("key", a.key)
		r.Set("name", a.name)
		r.Set("sort_order", i+1)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: create activity %q: %w", a.name, err)
		}
	}

	// ── catalog ──────────────────────────────────────────────────────
	for i, c := range seedCatalog {
		r := core.NewRecord(cols["catalog_materials"])
		r.Set("code", c.code)
		r.Set("name", c.name)
		r.Set("unit", c.unit)
		r.Set("unit_price", c.unitPrice)
		r.Set("sort_order", i+1)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: create catalog entry %q: %w", c.code, err)
		}
	}

	// ── material tree ────────────────────────────────────────────────
	createMaterial := func(familyID string, sortOrder int, d materialDef) error {
		r := core.NewRecord(cols["materials"])
		r.Set("family", familyID)
		r.Set("key", d.key)
		r.Set("code", d.code)
		r.Set("name", d.name)
		r.Set("unit", d.unit)
		r.Set("budget_quantity", d.budgetQty)
		r.Set("unit_price", d.unitPrice)
		r.Set("order_quantity", d.orderQty)
		r.Set("status", d.status)
		r.Set("sort_order", sortOrder)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("create material %q: %w", d.code, err)
		}
		return nil
	}

	for li, l := range seedLevels {
		lr := core.NewRecord(cols["levels"])
		lr.Set("key", l.key)
		lr.Set("name", l.name)
		lr.Set("depth", l.depth)
		lr.Set("sort_order", li+1)
		if err := app.Save(lr); err != nil {
			return fmt.Errorf("seed: create level %q: %w", l.name, err)
		}

		for si, s := range l.sublevels {
			sr := core.NewRecord(cols["sublevels"])
			sr.Set("level", lr.Id)
			sr.Set("key", s.key)
			sr.Set("name", s.name)
			sr.Set("depth", s.depth)
			sr.Set("sort_order", si+1)
			if err := app.Save(sr); err != nil {
				return fmt.Errorf("seed: create sublevel %q: %w", s.name, err)
			}

			for fi, f := range s.families {
				fr := core.NewRecord(cols["families"])
				fr.Set("sublevel", sr.Id)
				fr.Set("key", f.key)
				fr.Set("name", f.name)
				fr.Set("sort_order", fi+1)
				if err := app.Save(fr); err != nil {
					return fmt.Errorf("seed: create family %q: %w", f.name, err)
				}

				for mi, m := range f.materials {
					if err := createMaterial(fr.Id, mi+1, m); err != nil {
						return fmt.Errorf("seed: %w", err)
					}
				}
			}
		}
	}

	log.Printf("seed: inserted %d levels, %d catalog entries", len(seedLevels), len(seedCatalog))
	return nil
}
