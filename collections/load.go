package collections

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"prepedido/estimate"
	"prepedido/services"
)

// findSorted returns every record of a collection ordered by sort_order.
func findSorted(app *pocketbase.PocketBase, name string) ([]*core.Record, error) {
	col, err := app.FindCollectionByNameOrId(name)
	if err != nil {
		return nil, fmt.Errorf("find %s collection: %w", name, err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	slices.SortStableFunc(records, func(a, b *core.Record) int {
		return cmp.Compare(a.GetFloat("sort_order"), b.GetFloat("sort_order"))
	})
	return records, nil
}

// groupBy indexes records by the value of a relation field, keeping order.
func groupBy(records []*core.Record, field string) map[string][]*core.Record {
	out := make(map[string][]*core.Record)
	for _, r := range records {
		parent := r.GetString(field)
		out[parent] = append(out[parent], r)
	}
	return out
}

// LoadTree reads the levels → sublevels → families → materials → comments
// hierarchy into an estimate.Tree. Domain IDs come from the "key" fields.
func LoadTree(app *pocketbase.PocketBase) (estimate.Tree, error) {
	levels, err := findSorted(app, "levels")
	if err != nil {
		return estimate.Tree{}, fmt.Errorf("load tree: %w", err)
	}
	sublevels, err := findSorted(app, "sublevels")
	if err != nil {
		return estimate.Tree{}, fmt.Errorf("load tree: %w", err)
	}
	families, err := findSorted(app, "families")
	if err != nil {
		return estimate.Tree{}, fmt.Errorf("load tree: %w", err)
	}
	materials, err := findSorted(app, "materials")
	if err != nil {
		return estimate.Tree{}, fmt.Errorf("load tree: %w", err)
	}
	comments, err := findSorted(app, "material_comments")
	if err != nil {
		return estimate.Tree{}, fmt.Errorf("load tree: %w", err)
	}

	sublevelsByLevel := groupBy(sublevels, "level")
	familiesBySublevel := groupBy(families, "sublevel")
	materialsByFamily := groupBy(materials, "family")
	commentsByMaterial := groupBy(comments, "material")

	var tree estimate.Tree
	for _, lr := range levels {
		level := estimate.Level{
			ID:    lr.GetString("key"),
			Name:  lr.GetString("name"),
			Depth: lr.GetInt("depth"),
		}
		for _, sr := range sublevelsByLevel[lr.Id] {
			sub := estimate.Sublevel{
				ID:    sr.GetString("key"),
				Name:  sr.GetString("name"),
				Depth: sr.GetInt("depth"),
			}
			for _, fr := range familiesBySublevel[sr.Id] {
				fam := estimate.Family{
					ID:   fr.GetString("key"),
					Name: fr.GetString("name"),
				}
				for _, mr := range materialsByFamily[fr.Id] {
					m, err := materialFromRecord(mr, commentsByMaterial[mr.Id])
					if err != nil {
						return estimate.Tree{}, fmt.Errorf("load tree: %w", err)
					}
					fam.Materials = append(fam.Materials, m)
				}
				sub.Families = append(sub.Families, fam)
			}
			level.Sublevels = append(level.Sublevels, sub)
		}
		tree.Levels = append(tree.Levels, level)
	}
	return tree, nil
}

func materialFromRecord(r *core.Record, comments []*core.Record) (estimate.Material, error) {
	status, err := estimate.ParseStatus(r.GetString("status"))
	if err != nil {
		return estimate.Material{}, fmt.Errorf("material %s: %w", r.GetString("key"), err)
	}
	m := estimate.Material{
		ID:             r.GetString("key"),
		Code:           r.GetString("code"),
		Name:           r.GetString("name"),
		Unit:           r.GetString("unit"),
		BudgetQuantity: r.GetFloat("budget_quantity"),
		UnitPrice:      r.GetFloat("unit_price"),
		OrderQuantity:  r.GetFloat("order_quantity"),
		Status:         status,
	}
	for _, cr := range comments {
		m.Comments = append(m.Comments, estimate.Comment{
			ID:        cr.GetString("key"),
			Author:    cr.GetString("author"),
			Text:      cr.GetString("text"),
			CreatedAt: cr.GetDateTime("posted_at").Time(),
		})
	}
	return m, nil
}

// LoadCatalog reads catalog_materials in display order.
func LoadCatalog(app *pocketbase.PocketBase) ([]estimate.CatalogEntry, error) {
	records, err := findSorted(app, "catalog_materials")
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	entries := make([]estimate.CatalogEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, estimate.CatalogEntry{
			Code:      r.GetString("code"),
			Name:      r.GetString("name"),
			Unit:      r.GetString("unit"),
			UnitPrice: r.GetFloat("unit_price"),
		})
	}
	return entries, nil
}

// LoadLookups reads the project → work → activity filter options.
func LoadLookups(app *pocketbase.PocketBase) (services.Lookups, error) {
	projects, err := findSorted(app, "projects")
	if err != nil {
		return services.Lookups{}, fmt.Errorf("load lookups: %w", err)
	}
	works, err := findSorted(app, "works")
	if err != nil {
		return services.Lookups{}, fmt.Errorf("load lookups: %w", err)
	}
	activities, err := findSorted(app, "activities")
	if err != nil {
		return services.Lookups{}, fmt.Errorf("load lookups: %w", err)
	}

	projectKeys := make(map[string]string, len(projects))
	workKeys := make(map[string]string, len(works))

	var l services.Lookups
	for _, r := range projects {
		projectKeys[r.Id] = r.GetString("key")
		l.Projects = append(l.Projects, services.Project{ID: r.GetString("key"), Name: r.GetString("name")})
	}
	for _, r := range works {
		workKeys[r.Id] = r.GetString("key")
		l.Works = append(l.Works, services.Work{
			ID:        r.GetString("key"),
			Name:      r.GetString("name"),
			ProjectID: projectKeys[r.GetString("project")],
		})
	}
	for _, r := range activities {
		l.Activities = append(l.Activities, services.Activity{
			ID:     r.GetString("key"),
			Name:   r.GetString("name"),
			WorkID: workKeys[r.GetString("work")],
		})
	}
	return l, nil
}
