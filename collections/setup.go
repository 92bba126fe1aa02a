package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the filter lookup collections, the
// material catalog and the levels → sublevels → families → materials →
// material_comments hierarchy exist.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	works := ensureCollection(app, "works", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	ensureCollection(app, "activities", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "work",
			Required:      true,
			CollectionId:  works.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	ensureCollection(app, "catalog_materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	levels := ensureCollection(app, "levels", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "depth", Required: true, OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	sublevels := ensureCollection(app, "sublevels", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "level",
			Required:      true,
			CollectionId:  levels.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "depth", Required: true, OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	families := ensureCollection(app, "families", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "sublevel",
			Required:      true,
			CollectionId:  sublevels.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	// Quantities and prices may legitimately be zero, so they are not
	// Required (PocketBase treats 0 as blank for required numbers).
	materials := ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "family",
			Required:      true,
			CollectionId:  families.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "budget_quantity", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Min: floatPtr(0)})
		c.Fields.Add(&core.NumberField{Name: "order_quantity", Min: floatPtr(0)})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"pending", "approved", "in_approval"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})

	ensureCollection(app, "material_comments", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "material",
			Required:      true,
			CollectionId:  materials.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "author", Required: true})
		c.Fields.Add(&core.TextField{Name: "text", Required: true})
		c.Fields.Add(&core.DateField{Name: "posted_at", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

func floatPtr(v float64) *float64 { return &v }
