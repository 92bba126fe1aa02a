// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"prepedido/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// NewSeededApp is NewTestApp plus the demo pre-order from collections.Seed.
func NewSeededApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("failed to seed test app: %v", err)
	}
	return app
}

// CreateTestProject creates a project lookup record and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, key, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("key", key)
	record.Set("name", name)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// FindMaterialRecord returns the materials record whose key is materialID.
func FindMaterialRecord(t *testing.T, app *pocketbase.PocketBase, materialID string) *core.Record {
	t.Helper()

	r, err := app.FindFirstRecordByData("materials", "key", materialID)
	if err != nil {
		t.Fatalf("material %q not found: %v", materialID, err)
	}
	return r
}

// CreateTestComment stores a comment on the material whose key is materialID.
// Comments load in sortOrder.
func CreateTestComment(t *testing.T, app *pocketbase.PocketBase, materialID, author, text string, postedAt time.Time, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_comments")
	if err != nil {
		t.Fatalf("failed to find material_comments collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("material", FindMaterialRecord(t, app, materialID).Id)
	record.Set("key", fmt.Sprintf("%s-comment-%d", materialID, sortOrder))
	record.Set("author", author)
	record.Set("text", text)
	record.Set("posted_at", postedAt)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test comment: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
