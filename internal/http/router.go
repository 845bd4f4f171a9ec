package httpx

import (
	"encoding/json"
	"net/http"

	"solarscope/internal/http/handlers"
	"solarscope/internal/solar"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the API routes onto the solar service.
func NewRouter(svc *solar.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"service": "solarscope",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/bodies", handlers.ListBodies(svc))
		r.Get("/bodies/search", handlers.SearchBodies(svc))
		r.Get("/bodies/filter", handlers.FilterBodies(svc))
		r.Get("/bodies/{id}", handlers.GetBody(svc))

		r.Get("/planets", handlers.Planets(svc))
		r.Get("/planets/dwarf", handlers.DwarfPlanets(svc))
		r.Get("/planets/{id}/moons", handlers.Moons(svc))

		r.Get("/knowncount", handlers.KnownCounts(svc))
		r.Get("/knowncount/{id}", handlers.KnownCount(svc))

		r.Get("/positions", handlers.Positions(svc))
	})

	return r
}
