package httpx

import (
	"net/http"

	"github.com/target/gradebook/internal/http/ui/viewmodel"
)

//nolint:gochecknoglobals // read-only user-facing messages
var errorMessages = map[int]string{
	http.StatusForbidden:           "You do not have access to this page.",
	http.StatusNotFound:            "The page you were looking for could not be found.",
	http.StatusInternalServerError: "Something went wrong on our side. Please try again in a moment.",
}

// renderErrorPage writes a generic HTML error page. Details stay in the logs.
func renderErrorPage(w http.ResponseWriter, r *http.Request, t *TemplateRenderer, status int) {
	msg, ok := errorMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}
	if t == nil {
		http.Error(w, msg, status)
		return
	}

	page := &viewmodel.ErrorPage{
		Layout:  viewmodel.Layout{Title: http.StatusText(status), Path: r.URL.Path},
		Status:  status,
		Message: msg,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.RenderError(w, page); err != nil {
		// Headers are already sent; the renderer has logged the failure.
		return
	}
}
