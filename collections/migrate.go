package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"

	"prepedido/estimate"
)

// MigrateMaterialInvariants repairs stored material rows that were edited
// outside the app: order quantities are clamped to [0, budget_quantity] and
// unknown statuses become pending. Safe to call on every startup -- returns
// early if nothing needs fixing.
func MigrateMaterialInvariants(app *pocketbase.PocketBase) (int, error) {
	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return 0, fmt.Errorf("migrate: could not find materials collection: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return 0, fmt.Errorf("migrate: could not query materials: %w", err)
	}

	fixed := 0
	for _, r := range records {
		changed := false

		q := r.GetFloat("order_quantity")
		if clamped := estimate.ClampQuantity(q, r.GetFloat("budget_quantity")); clamped != q {
			r.Set("order_quantity", clamped)
			changed = true
		}
		if _, err := estimate.ParseStatus(r.GetString("status")); err != nil {
			r.Set("status", string(estimate.StatusPending))
			changed = true
		}
		if !changed {
			continue
		}

		if err := app.Save(r); err != nil {
			log.Printf("migrate: failed to repair material %q: %v\n", r.GetString("key"), err)
			continue
		}
		fixed++
	}

	if fixed > 0 {
		log.Printf("migrate: repaired %d material record(s)\n", fixed)
	}
	return fixed, nil
}
