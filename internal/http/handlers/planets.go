package handlers

import (
	"net/http"

	"solarscope/internal/solar"

	"github.com/go-chi/chi/v5"
)

// Planets handles GET /api/v1/planets.
func Planets(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(r)
		out, err := svc.Planets(r.Context(), page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, page.Format, out)
	}
}

// DwarfPlanets handles GET /api/v1/planets/dwarf.
func DwarfPlanets(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(r)
		out, err := svc.DwarfPlanets(r.Context(), page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, page.Format, out)
	}
}

// Moons handles GET /api/v1/planets/{id}/moons.
func Moons(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := parsePage(r)
		out, err := svc.GetMoons(r.Context(), chi.URLParam(r, "id"), page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, page.Format, out)
	}
}
