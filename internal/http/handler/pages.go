package handler

import (
	"net/http"
	"strings"

	"contactApp/internal/core"
	"contactApp/internal/view"
)

// Home — страница с контактной формой.
func Home(tpl *view.Templates) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := tpl.Render(w, r, http.StatusOK, "home", "Contact us", nil); err != nil {
			core.Fail(w, r, core.Internal("template error", err))
		}
	}
}

// NotFound — JSON для /api/*, HTML-страница для остального (OWASP A03).
func NotFound(tpl *view.Templates) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			core.Fail(w, r, core.NotFound("Not found."))
			return
		}
		if err := tpl.Render(w, r, http.StatusNotFound, "notfound", "Page not found", r.URL.Path); err != nil {
			core.LogError("Ошибка рендеринга шаблона notfound", map[string]interface{}{
				"error": err.Error(),
				"path":  r.URL.Path,
			})
			core.Fail(w, r, core.NotFound("Not found."))
		}
	}
}

// MethodNotAllowed — 405 в формате problem details.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	core.Fail(w, r, &core.AppError{
		Code:    "method_not_allowed",
		Status:  http.StatusMethodNotAllowed,
		Message: "Method not allowed.",
	})
}
