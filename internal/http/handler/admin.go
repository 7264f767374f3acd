package handler

import (
	"net/http"
	"strconv"

	"contactApp/internal/core"
	"contactApp/internal/storage"
)

// SubmissionsPage — ответ GET /api/admin/submissions.
type SubmissionsPage struct {
	Items  []storage.Submission `json:"items"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// Submissions — список заявок, новые первыми. Требует JWT.
func Submissions(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 50)
		if err != nil {
			core.Fail(w, r, core.BadRequest("Invalid limit.", err))
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil {
			core.Fail(w, r, core.BadRequest("Invalid offset.", err))
			return
		}
		if limit < 1 || limit > storage.MaxListLimit || offset < 0 {
			core.Fail(w, r, core.Validation("Limit or offset out of range.", map[string]string{
				"limit":  "1.." + strconv.Itoa(storage.MaxListLimit),
				"offset": ">= 0",
			}))
			return
		}

		items, err := store.List(r.Context(), limit, offset)
		if err != nil {
			core.Fail(w, r, core.Internal("An internal server error occurred.", err))
			return
		}
		core.JSON(w, http.StatusOK, SubmissionsPage{Items: items, Limit: limit, Offset: offset})
	}
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
