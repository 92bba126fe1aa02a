package collections

import (
	"context"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"prepedido/estimate"
)

// RecordWriter mirrors applied estimate changes into the materials and
// material_comments collections.
type RecordWriter struct {
	app *pocketbase.PocketBase
}

func NewRecordWriter(app *pocketbase.PocketBase) *RecordWriter {
	return &RecordWriter{app: app}
}

var _ estimate.Persister = (*RecordWriter)(nil)

// Persist writes one change. The store discards the change when this fails.
func (w *RecordWriter) Persist(ctx context.Context, change estimate.Change) error {
	var err error
	switch change.Op {
	case estimate.SetOrderQuantity{}.Op():
		err = w.updateMaterial(ctx, change.Material, func(r *core.Record) {
			r.Set("order_quantity", change.Material.OrderQuantity)
		})
	case estimate.ReplaceMaterial{}.Op():
		err = w.updateMaterial(ctx, change.Material, func(r *core.Record) {
			r.Set("code", change.Material.Code)
			r.Set("name", change.Material.Name)
			r.Set("unit", change.Material.Unit)
			r.Set("unit_price", change.Material.UnitPrice)
			r.Set("status", string(change.Material.Status))
		})
	case estimate.AddMaterial{}.Op():
		err = w.insertMaterial(ctx, change.Path.FamilyID, change.Material)
	case estimate.AppendComment{}.Op():
		if change.Comment == nil {
			return fmt.Errorf("persist %s: missing comment", change.Op)
		}
		err = w.insertComment(ctx, change.Material.ID, *change.Comment)
	default:
		return fmt.Errorf("persist: unsupported change %q", change.Op)
	}
	if err != nil {
		log.Printf("persist: %s failed: %v", change.Op, err)
		return fmt.Errorf("persist %s: %w", change.Op, err)
	}
	return nil
}

func (w *RecordWriter) updateMaterial(ctx context.Context, m estimate.Material, apply func(*core.Record)) error {
	r, err := w.app.FindFirstRecordByData("materials", "key", m.ID)
	if err != nil {
		return fmt.Errorf("find material %s: %w", m.ID, err)
	}
	apply(r)
	return w.app.SaveWithContext(ctx, r)
}

func (w *RecordWriter) insertMaterial(ctx context.Context, familyKey string, m estimate.Material) error {
	family, err := w.app.FindFirstRecordByData("families", "key", familyKey)
	if err != nil {
		return fmt.Errorf("find family %s: %w", familyKey, err)
	}
	next, err := w.nextSortOrder("materials", "family", family.Id)
	if err != nil {
		return err
	}

	col, err := w.app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("find materials collection: %w", err)
	}
	r := core.NewRecord(col)
	r.Set("family", family.Id)
	r.Set("key", m.ID)
	r.Set("code", m.Code)
	r.Set("name", m.Name)
	r.Set("unit", m.Unit)
	r.Set("budget_quantity", m.BudgetQuantity)
	r.Set("unit_price", m.UnitPrice)
	r.Set("order_quantity", m.OrderQuantity)
	r.Set("status", string(m.Status))
	r.Set("sort_order", next)
	return w.app.SaveWithContext(ctx, r)
}

func (w *RecordWriter) insertComment(ctx context.Context, materialKey string, c estimate.Comment) error {
	material, err := w.app.FindFirstRecordByData("materials", "key", materialKey)
	if err != nil {
		return fmt.Errorf("find material %s: %w", materialKey, err)
	}
	col, err := w.app.FindCollectionByNameOrId("material_comments")
	if err != nil {
		return fmt.Errorf("find material_comments collection: %w", err)
	}
	next, err := w.nextSortOrder("material_comments", "material", material.Id)
	if err != nil {
		return err
	}

	r := core.NewRecord(col)
	r.Set("material", material.Id)
	r.Set("key", c.ID)
	r.Set("author", c.Author)
	r.Set("text", c.Text)
	r.Set("posted_at", c.CreatedAt)
	r.Set("sort_order", next)
	return w.app.SaveWithContext(ctx, r)
}

// nextSortOrder returns the sort_order that appends a record after the last
// child of parentID.
func (w *RecordWriter) nextSortOrder(collection, relation, parentID string) (int, error) {
	last, err := w.app.FindRecordsByFilter(
		collection,
		relation+" = {:parent}",
		"-sort_order", 1, 0,
		map[string]any{"parent": parentID},
	)
	if err != nil {
		return 0, fmt.Errorf("query %s order: %w", collection, err)
	}
	if len(last) == 0 {
		return 1, nil
	}
	return last[0].GetInt("sort_order") + 1, nil
}
