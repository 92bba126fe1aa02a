package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"prepedido/collections"
	"prepedido/config"
	"prepedido/estimate"
	"prepedido/services"
	"prepedido/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// fullSelection is the seeded project/work/activity chain.
var fullSelection = services.Selection{ProjectID: "1", WorkID: "1", ActivityID: "1"}

// newTestEnv builds an editable Env over the seeded fixture.
func newTestEnv(t *testing.T) (*pocketbase.PocketBase, *Env) {
	t.Helper()
	app := testhelpers.NewSeededApp(t)

	tree, err := collections.LoadTree(app)
	if err != nil {
		t.Fatalf("LoadTree() error: %v", err)
	}
	entries, err := collections.LoadCatalog(app)
	if err != nil {
		t.Fatalf("LoadCatalog() error: %v", err)
	}
	lookups, err := collections.LoadLookups(app)
	if err != nil {
		t.Fatalf("LoadLookups() error: %v", err)
	}

	metrics := NewMetrics()
	store := estimate.NewStore(tree, estimate.WithObserver(metrics.Observe))
	env := &Env{
		Store:    store,
		Mutator:  store,
		Catalog:  services.NewStaticCatalog(entries),
		Lookups:  lookups,
		Settings: config.Default(),
		Metrics:  metrics,
	}
	return app, env
}

// newFormRequest builds an HTMX request carrying form and sel in its context.
func newFormRequest(method, target string, form url.Values, sel services.Selection) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("HX-Request", "true")
	return req.WithContext(context.WithValue(req.Context(), SelectionKey, sel))
}

// addComments appends texts to a material in order, oldest first.
func addComments(t *testing.T, env *Env, materialID string, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if _, ok, err := env.Mutator.AppendComment(context.Background(), materialID, text); err != nil || !ok {
			t.Fatalf("AppendComment(%q) = %v, %v", materialID, ok, err)
		}
	}
}
