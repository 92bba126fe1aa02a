package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"prepedido/estimate"
	"prepedido/services"
	"prepedido/testhelpers"
)

func TestHandleSetQuantity_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		total string
	}{
		{"within budget", "150", 150, "$2.775.000"},
		{"comma decimal", "150,5", 150.5, "$2.784.250"},
		{"above budget", "999", 200, "$3.700.000"},
		{"negative", "-5", 0, "$0"},
		{"not a number", "abc", 0, "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, env := newTestEnv(t)
			req := newFormRequest(http.MethodPatch, "/materials/MAT-002/quantity", url.Values{"quantity": {tt.input}}, fullSelection)
			req.SetPathValue("materialId", "MAT-002")
			rec := httptest.NewRecorder()

			if err := HandleSetQuantity(env)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}

			m, _ := env.Store.Snapshot().FindMaterial("MAT-002")
			if m.OrderQuantity != tt.want {
				t.Errorf("OrderQuantity = %v, want %v", m.OrderQuantity, tt.want)
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), `id="estimate-content"`, tt.total)
			if !strings.Contains(rec.Header().Get("HX-Trigger"), "Cantidad actualizada") {
				t.Errorf("expected success toast, got %q", rec.Header().Get("HX-Trigger"))
			}
		})
	}
}

func TestHandleSetQuantity_UnknownMaterial(t *testing.T) {
	app, env := newTestEnv(t)
	before := env.Store.Snapshot()

	req := newFormRequest(http.MethodPatch, "/materials/nope/quantity", url.Values{"quantity": {"1"}}, fullSelection)
	req.SetPathValue("materialId", "nope")
	rec := httptest.NewRecorder()

	if err := HandleSetQuantity(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("no-op should not swap content")
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Material no encontrado") {
		t.Errorf("expected info toast, got %q", rec.Header().Get("HX-Trigger"))
	}
	if len(env.Store.Snapshot().Levels) != len(before.Levels) {
		t.Error("tree should be unchanged")
	}
}

func TestHandleAddMaterial(t *testing.T) {
	app, env := newTestEnv(t)

	req := newFormRequest(http.MethodPost, "/families/familia-2/materials", url.Values{"code": {"MAT-008"}}, fullSelection)
	req.SetPathValue("familyId", "familia-2")
	rec := httptest.NewRecorder()

	if err := HandleAddMaterial(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	f, _ := env.Store.Snapshot().FindFamily("familia-2")
	if len(f.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(f.Materials))
	}
	added := f.Materials[1]
	if added.Code != "MAT-008" || added.OrderQuantity != 0 || added.BudgetQuantity != 0 || added.Status != estimate.StatusPending {
		t.Errorf("unexpected added material: %+v", added)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Cal Hidratada")
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Material agregado") {
		t.Errorf("expected toast, got %q", rec.Header().Get("HX-Trigger"))
	}
}

func TestHandleAddMaterial_DuplicateIsNoop(t *testing.T) {
	app, env := newTestEnv(t)

	req := newFormRequest(http.MethodPost, "/families/familia-1/materials", url.Values{"code": {"MAT-001"}}, fullSelection)
	req.SetPathValue("familyId", "familia-1")
	rec := httptest.NewRecorder()

	if err := HandleAddMaterial(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	f, _ := env.Store.Snapshot().FindFamily("familia-1")
	if len(f.Materials) != 2 {
		t.Errorf("duplicate should not be added, got %d materials", len(f.Materials))
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected no swap for a no-op")
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "El material ya está en la familia") {
		t.Errorf("expected duplicate toast, got %q", rec.Header().Get("HX-Trigger"))
	}
}

func TestHandleAddMaterial_UnknownFamily(t *testing.T) {
	app, env := newTestEnv(t)
	before := env.Store.Snapshot()

	req := newFormRequest(http.MethodPost, "/families/nope/materials", url.Values{"code": {"MAT-008"}}, fullSelection)
	req.SetPathValue("familyId", "nope")
	rec := httptest.NewRecorder()

	if err := HandleAddMaterial(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "Familia no encontrada") || strings.Contains(trigger, "ya está") {
		t.Errorf("expected unknown family toast, got %q", trigger)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("expected no swap for a no-op")
	}
	if got := services.CountMaterials(env.Store.Snapshot()); got != services.CountMaterials(before) {
		t.Errorf("material count changed to %d", got)
	}
}

func TestHandleAddMaterial_UnknownCode(t *testing.T) {
	app, env := newTestEnv(t)

	req := newFormRequest(http.MethodPost, "/families/familia-1/materials", url.Values{"code": {""}}, fullSelection)
	req.SetPathValue("familyId", "familia-1")
	rec := httptest.NewRecorder()

	if err := HandleAddMaterial(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Selecciona un material") {
		t.Errorf("expected selection toast, got %q", rec.Header().Get("HX-Trigger"))
	}
}

func TestHandleReplaceMaterial_KeepsQuantitiesAndComments(t *testing.T) {
	app, env := newTestEnv(t)
	addComments(t, env, "MAT-001", "Revisar con proveedor")

	req := newFormRequest(http.MethodPost, "/materials/MAT-001/replace", url.Values{"code": {"MAT-007"}}, fullSelection)
	req.SetPathValue("materialId", "MAT-001")
	rec := httptest.NewRecorder()

	if err := HandleReplaceMaterial(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	m, ok := env.Store.Snapshot().FindMaterial("MAT-001")
	if !ok {
		t.Fatal("replaced material should keep its identity")
	}
	if m.Code != "MAT-007" || m.UnitPrice != 1200 || m.Status != estimate.StatusPending {
		t.Errorf("unexpected replacement: %+v", m)
	}
	if m.OrderQuantity != 450 || m.BudgetQuantity != 500 || len(m.Comments) != 1 {
		t.Errorf("quantities or comments changed: %+v", m)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Material sustituido") {
		t.Errorf("expected toast, got %q", rec.Header().Get("HX-Trigger"))
	}
}

func TestHandleAddComment(t *testing.T) {
	app, env := newTestEnv(t)

	req := newFormRequest(http.MethodPost, "/materials/MAT-002/comments", url.Values{"text": {"  Pedir a bodega  "}}, fullSelection)
	req.SetPathValue("materialId", "MAT-002")
	rec := httptest.NewRecorder()

	if err := HandleAddComment(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	m, _ := env.Store.Snapshot().FindMaterial("MAT-002")
	if len(m.Comments) != 1 || m.Comments[0].Text != "Pedir a bodega" || m.Comments[0].Author != "Usuario Actual" {
		t.Fatalf("unexpected comments: %+v", m.Comments)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Pedir a bodega")
}

func TestHandleAddComment_BlankIsNoop(t *testing.T) {
	app, env := newTestEnv(t)

	req := newFormRequest(http.MethodPost, "/materials/MAT-002/comments", url.Values{"text": {"   "}}, fullSelection)
	req.SetPathValue("materialId", "MAT-002")
	rec := httptest.NewRecorder()

	if err := HandleAddComment(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	m, _ := env.Store.Snapshot().FindMaterial("MAT-002")
	if len(m.Comments) != 0 {
		t.Errorf("blank comment should not be stored, got %+v", m.Comments)
	}
}

func TestMutations_ReadOnly(t *testing.T) {
	app, env := newTestEnv(t)
	env.Mutator = nil

	req := newFormRequest(http.MethodPatch, "/materials/MAT-002/quantity", url.Values{"quantity": {"1"}}, fullSelection)
	req.SetPathValue("materialId", "MAT-002")
	rec := httptest.NewRecorder()

	if err := HandleSetQuantity(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	m, _ := env.Store.Snapshot().FindMaterial("MAT-002")
	if m.OrderQuantity != 180 {
		t.Errorf("read-only request changed quantity to %v", m.OrderQuantity)
	}
}

type failingMutator struct{ estimate.Mutator }

func (failingMutator) AppendComment(context.Context, string, string) (estimate.Comment, bool, error) {
	return estimate.Comment{}, false, errors.New("disk full")
}

func TestHandleAddComment_PersistError(t *testing.T) {
	app, env := newTestEnv(t)
	env.Mutator = failingMutator{env.Store}

	req := newFormRequest(http.MethodPost, "/materials/MAT-002/comments", url.Values{"text": {"hola"}}, fullSelection)
	req.SetPathValue("materialId", "MAT-002")
	rec := httptest.NewRecorder()

	if err := HandleAddComment(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("error response should not be swapped")
	}
}

func TestHandleFamilyMaterials(t *testing.T) {
	app, env := newTestEnv(t)
	addComments(t, env, "MAT-004",
		"Cantidad ajustada", "Pendiente aprobación", "Considerar material alternativo", "Verificar compatibilidad")

	req := newFormRequest(http.MethodGet, "/families/familia-3/materials", nil, fullSelection)
	req.SetPathValue("familyId", "familia-3")
	rec := httptest.NewRecorder()

	if err := HandleFamilyMaterials(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, `id="family-familia-3-materials"`, "Malla Electrosoldada 6x6", "Ver 1 comentarios más")

	// Newest of the four comments is listed first.
	if strings.Index(body, "Verificar compatibilidad") > strings.Index(body, "Considerar material alternativo") {
		t.Error("comments should be newest first")
	}
}

func TestHandleFamilyMaterials_NotFound(t *testing.T) {
	app, env := newTestEnv(t)

	req := newFormRequest(http.MethodGet, "/families/nope/materials", nil, fullSelection)
	req.SetPathValue("familyId", "nope")
	rec := httptest.NewRecorder()

	if err := HandleFamilyMaterials(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleAddToOrder(t *testing.T) {
	app, env := newTestEnv(t)

	req := newFormRequest(http.MethodPost, "/materials/MAT-001/order", nil, fullSelection)
	req.SetPathValue("materialId", "MAT-001")
	rec := httptest.NewRecorder()

	if err := HandleAddToOrder(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Material agregado al pedido") {
		t.Errorf("expected toast, got %q", rec.Header().Get("HX-Trigger"))
	}
}
