package handlers

import (
	"net/http"
	"strconv"

	"solarscope/internal/solar"

	"github.com/go-chi/chi/v5"
)

// ListBodies handles GET /api/v1/bodies.
func ListBodies(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := solar.ListBodiesRequest{
			Page:     parsePage(r),
			BodyType: r.URL.Query().Get("body_type"),
			IsPlanet: queryBool(r, "is_planet"),
			OrderBy:  r.URL.Query().Get("order_by"),
		}
		if v := r.URL.Query().Get("order_desc"); v != "" {
			req.OrderDesc, _ = strconv.ParseBool(v)
		}

		out, err := svc.ListBodies(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, req.Page.Format, out)
	}
}

// GetBody handles GET /api/v1/bodies/{id}.
func GetBody(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := parseFormat(r)
		out, err := svc.GetBody(r.Context(), chi.URLParam(r, "id"), format)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, format, out)
	}
}

// SearchBodies handles GET /api/v1/bodies/search.
func SearchBodies(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, "Error: query parameter q is required.", http.StatusBadRequest)
			return
		}

		page := parsePage(r)
		out, err := svc.SearchBodies(r.Context(), query, page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, page.Format, out)
	}
}

// FilterBodies handles GET /api/v1/bodies/filter.
func FilterBodies(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := solar.FilterBodiesRequest{
			Page:       parsePage(r),
			MinRadius:  queryFloat(r, "min_radius"),
			MaxRadius:  queryFloat(r, "max_radius"),
			MinGravity: queryFloat(r, "min_gravity"),
			MaxGravity: queryFloat(r, "max_gravity"),
			MinDensity: queryFloat(r, "min_density"),
			MaxDensity: queryFloat(r, "max_density"),
			HasMoons:   queryBool(r, "has_moons"),
		}

		out, err := svc.FilterBodies(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, req.Page.Format, out)
	}
}
