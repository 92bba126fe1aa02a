package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"prepedido/services"
	"prepedido/templates"
)

// HandleFilters stores the posted project/work/activity selection. The
// "changed" field names the dropdown that triggered the request; every
// choice below it is reset.
func HandleFilters(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Solicitud inválida")
		}

		sel := services.Selection{
			ProjectID:  e.Request.FormValue("project"),
			WorkID:     e.Request.FormValue("work"),
			ActivityID: e.Request.FormValue("activity"),
		}
		switch e.Request.FormValue("changed") {
		case "project":
			sel.WorkID, sel.ActivityID = "", ""
		case "work":
			sel.ActivityID = ""
		}
		sel = sel.Normalize(env.Lookups)

		setSelectionCookies(e, sel)
		ctx := context.WithValue(e.Request.Context(), SelectionKey, sel)
		e.Request = e.Request.WithContext(ctx)

		if e.Request.Header.Get("HX-Request") != "true" {
			return e.Redirect(http.StatusSeeOther, "/")
		}
		return templates.Root(buildEstimateData(env, sel)).Render(e.Request.Context(), e.Response)
	}
}

// HandleWorkOptions returns the work <option> list for ?project=.
func HandleWorkOptions(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sel := services.Selection{ProjectID: e.Request.URL.Query().Get("project")}
		f := buildFilterData(env.Lookups, sel)
		return templates.FilterOptions("Selecciona un trabajo", f.Works).Render(e.Request.Context(), e.Response)
	}
}

// HandleActivityOptions returns the activity <option> list for ?work=.
func HandleActivityOptions(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sel := services.Selection{WorkID: e.Request.URL.Query().Get("work")}
		f := buildFilterData(env.Lookups, sel)
		return templates.FilterOptions("Selecciona una actividad", f.Activities).Render(e.Request.Context(), e.Response)
	}
}
