package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"prepedido/estimate"
)

// ImportCatalog upserts entries into catalog_materials by code. New codes are
// appended after the existing entries. All writes happen in one transaction.
func ImportCatalog(app *pocketbase.PocketBase, entries []estimate.CatalogEntry) (created, updated int, err error) {
	col, err := app.FindCollectionByNameOrId("catalog_materials")
	if err != nil {
		return 0, 0, fmt.Errorf("import catalog: %w", err)
	}
	existing, err := findSorted(app, "catalog_materials")
	if err != nil {
		return 0, 0, fmt.Errorf("import catalog: %w", err)
	}

	byCode := make(map[string]*core.Record, len(existing))
	nextSort := 1
	for _, r := range existing {
		byCode[r.GetString("code")] = r
		nextSort = max(nextSort, r.GetInt("sort_order")+1)
	}

	err = app.RunInTransaction(func(txApp core.App) error {
		for _, e := range entries {
			r, ok := byCode[e.Code]
			if !ok {
				r = core.NewRecord(col)
				r.Set("code", e.Code)
				r.Set("sort_order", nextSort)
				nextSort++
			}
			r.Set("name", e.Name)
			r.Set("unit", e.Unit)
			r.Set("unit_price", e.UnitPrice)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("save catalog entry %q: %w", e.Code, err)
			}
			if ok {
				updated++
			} else {
				byCode[e.Code] = r
				created++
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("import_catalog: %v", err)
		return 0, 0, err
	}
	return created, updated, nil
}
