// common.go
package middleware

import (
	"contactApp/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// UseCommon — базовая цепочка для всех маршрутов
func UseCommon(r chi.Router, cfg core.Config) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(core.SecureHeaders(cfg)) // CSP с nonce
}
