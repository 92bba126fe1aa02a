package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"prepedido/services"
)

type contextKey string

const SelectionKey contextKey = "selection"

const (
	projectCookie  = "filter_project"
	workCookie     = "filter_work"
	activityCookie = "filter_activity"
)

// GetSelection extracts the filter selection from the request context.
func GetSelection(r *http.Request) services.Selection {
	if val, ok := r.Context().Value(SelectionKey).(services.Selection); ok {
		return val
	}
	return services.Selection{}
}

// SelectionMiddleware reads the filter cookies, drops choices that no longer
// match the lookups and stores the result in the request context.
func SelectionMiddleware(env *Env) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		raw := services.Selection{
			ProjectID:  cookieValue(e.Request, projectCookie),
			WorkID:     cookieValue(e.Request, workCookie),
			ActivityID: cookieValue(e.Request, activityCookie),
		}
		sel := raw.Normalize(env.Lookups)
		if sel != raw {
			log.Printf("middleware: stale filter selection %+v, using %+v", raw, sel)
			setSelectionCookies(e, sel)
		}

		ctx := context.WithValue(e.Request.Context(), SelectionKey, sel)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// setSelectionCookies writes sel back to the client. Empty choices clear
// their cookie.
func setSelectionCookies(e *core.RequestEvent, sel services.Selection) {
	for name, value := range map[string]string{
		projectCookie:  sel.ProjectID,
		workCookie:     sel.WorkID,
		activityCookie: sel.ActivityID,
	} {
		c := &http.Cookie{Name: name, Value: value, Path: "/", SameSite: http.SameSiteLaxMode}
		if value == "" {
			c.MaxAge = -1
		}
		http.SetCookie(e.Response, c)
	}
}
