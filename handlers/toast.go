package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

const (
	toastSuccess = "success"
	toastInfo    = "info"
	toastError   = "error"
)

type toast struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SetToast adds a showToast event to the HX-Trigger header, keeping any other
// events already set. The same payload goes into the flash_toast cookie for
// full page loads.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	t := toast{Message: message, Type: toastType}

	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			log.Printf("toast: replacing non-JSON HX-Trigger %q", existing)
			events = map[string]any{}
		}
	}
	events["showToast"] = t

	data, err := json.Marshal(events)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	flash, err := json.Marshal(t)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(flash)),
		Path:     "/",
		MaxAge:   10,
		SameSite: http.SameSiteLaxMode,
	})
}

// ErrorToast sets an error toast and tells HTMX not to swap the response body.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, toastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
