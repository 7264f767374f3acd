package handler

import (
	"context"
	"net/http"
	"time"

	"contactApp/internal/core"
	"contactApp/internal/storage"
)

// Health — процесс жив.
func Health(w http.ResponseWriter, r *http.Request) {
	core.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready — хранилище отвечает.
func Ready(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			core.LogError("readyz: хранилище недоступно", map[string]interface{}{"error": err})
			core.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		core.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
