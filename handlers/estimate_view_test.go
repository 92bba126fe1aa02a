package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"prepedido/services"
	"prepedido/testhelpers"
)

func TestHandleEstimatePage_EmptySelection(t *testing.T) {
	app, env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	if err := HandleEstimatePage(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "<!doctype html>", "Selecciona los filtros para comenzar", "Torre Residencial Norte")
	testhelpers.AssertHTMLNotContains(t, body, "Valor Total (Prepedido)", "Cemento Portland")
}

func TestHandleEstimatePage_FullSelection(t *testing.T) {
	app, env := newTestEnv(t)
	req := newFormRequest(http.MethodGet, "/", nil, fullSelection)
	req.Header.Del("HX-Request")
	rec := httptest.NewRecorder()

	if err := HandleEstimatePage(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Torre Residencial Norte › Estructura Principal › Cimentación",
		"NIVEL 5",
		"APTOS: 80",
		"Cemento Portland Tipo I",
		"$19.575.000", // Concretos order subtotal
		"$21.750.000", // Concretos budget subtotal
		`hx-patch="/materials/MAT-001/quantity"`,
		"Agregar Material",
		"Valor Total (Prepedido)",
	)
}

func TestHandleEstimatePage_HTMXRendersRoot(t *testing.T) {
	app, env := newTestEnv(t)
	req := newFormRequest(http.MethodGet, "/", nil, fullSelection)
	rec := httptest.NewRecorder()

	if err := HandleEstimatePage(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<div id="estimate-root">`) {
		t.Errorf("expected root partial, got %q", body[:min(len(body), 60)])
	}
}

func TestHandleEstimatePage_ReadOnly(t *testing.T) {
	app, env := newTestEnv(t)
	env.Mutator = nil
	req := newFormRequest(http.MethodGet, "/", nil, fullSelection)
	rec := httptest.NewRecorder()

	if err := HandleEstimatePage(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "hx-patch", "Agregar Material", "/replace")
}

func TestBuildEstimateData_Totals(t *testing.T) {
	_, env := newTestEnv(t)
	addComments(t, env, "MAT-001", "Material verificado", "Precio actualizado")
	data := buildEstimateData(env, fullSelection)

	if len(data.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(data.Levels))
	}
	family := data.Levels[0].Sublevels[0].Families[0]
	want := services.Totals{Order: 19575000, Budget: 21750000}
	if family.Figures.OrderTotal != services.FormatCOP(want.Order) || family.Figures.BudgetTotal != services.FormatCOP(want.Budget) {
		t.Errorf("family figures = %+v", family.Figures)
	}
	if family.Figures.OrderPerUnit != "$244.688" {
		t.Errorf("OrderPerUnit = %q, want $244.688", family.Figures.OrderPerUnit)
	}
	if data.Summary.MaterialCount != 5 {
		t.Errorf("MaterialCount = %d, want 5", data.Summary.MaterialCount)
	}

	m := family.Materials[0]
	if len(m.Comments) != 2 || m.Comments[0].Text != "Precio actualizado" {
		t.Errorf("expected newest comment first, got %+v", m.Comments)
	}
	for _, o := range m.ReplaceOptions {
		if o.Code == "MAT-001" || o.Code == "MAT-003" {
			t.Errorf("replace options should skip codes in the family, got %s", o.Code)
		}
	}
}

func TestHandleFilters_Cascade(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		want    services.Selection
		content string
	}{
		{
			name:    "project change clears dependents",
			form:    url.Values{"project": {"2"}, "work": {"1"}, "activity": {"1"}, "changed": {"project"}},
			want:    services.Selection{ProjectID: "2"},
			content: "Selecciona los filtros para comenzar",
		},
		{
			name:    "work change clears activity",
			form:    url.Values{"project": {"1"}, "work": {"2"}, "activity": {"1"}, "changed": {"work"}},
			want:    services.Selection{ProjectID: "1", WorkID: "2"},
			content: "Selecciona los filtros para comenzar",
		},
		{
			name:    "activity completes the selection",
			form:    url.Values{"project": {"1"}, "work": {"1"}, "activity": {"3"}, "changed": {"activity"}},
			want:    services.Selection{ProjectID: "1", WorkID: "1", ActivityID: "3"},
			content: "Valor Total (Prepedido)",
		},
		{
			name:    "mismatched activity is dropped",
			form:    url.Values{"project": {"1"}, "work": {"1"}, "activity": {"4"}},
			want:    services.Selection{ProjectID: "1", WorkID: "1"},
			content: "Selecciona los filtros para comenzar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, env := newTestEnv(t)
			req := newFormRequest(http.MethodPost, "/filters", tt.form, services.Selection{})
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := HandleFilters(env)(e); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if got := GetSelection(e.Request); got != tt.want {
				t.Errorf("selection = %+v, want %+v", got, tt.want)
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), `id="estimate-root"`, tt.content)

			cookies := map[string]string{}
			for _, c := range rec.Result().Cookies() {
				cookies[c.Name] = c.Value
			}
			if cookies[projectCookie] != tt.want.ProjectID || cookies[workCookie] != tt.want.WorkID || cookies[activityCookie] != tt.want.ActivityID {
				t.Errorf("cookies = %v, want %+v", cookies, tt.want)
			}
		})
	}
}

func TestHandleFilters_NonHTMXRedirects(t *testing.T) {
	app, env := newTestEnv(t)
	req := newFormRequest(http.MethodPost, "/filters", url.Values{"project": {"1"}}, services.Selection{})
	req.Header.Del("HX-Request")
	rec := httptest.NewRecorder()

	if err := HandleFilters(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHandleWorkAndActivityOptions(t *testing.T) {
	app, env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/filters/works?project=1", nil)
	rec := httptest.NewRecorder()
	if err := HandleWorkOptions(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Estructura Principal", "Acabados Interiores")
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "Instalaciones")

	req = httptest.NewRequest(http.MethodGet, "/filters/activities?work=2", nil)
	rec = httptest.NewRecorder()
	if err := HandleActivityOptions(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Pisos y Revestimientos")
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "Cimentación")
}
