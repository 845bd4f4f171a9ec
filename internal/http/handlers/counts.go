package handlers

import (
	"net/http"

	"solarscope/internal/solar"

	"github.com/go-chi/chi/v5"
)

// KnownCounts handles GET /api/v1/knowncount.
func KnownCounts(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(r)
		out, err := svc.KnownCounts(r.Context(), page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, page.Format, out)
	}
}

// KnownCount handles GET /api/v1/knowncount/{id}.
func KnownCount(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := parseFormat(r)
		out, err := svc.KnownCount(r.Context(), chi.URLParam(r, "id"), format)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, format, out)
	}
}
