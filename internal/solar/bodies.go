package solar

import (
	"context"
	"fmt"
	"strings"

	"solarscope/internal/render"
)

// ListBodiesRequest carries the caller parameters for a body listing.
type ListBodiesRequest struct {
	Page      render.PageRequest
	BodyType  string
	IsPlanet  *bool
	OrderBy   string
	OrderDesc bool
}

// ListBodies lists celestial bodies with optional filtering and ordering.
func (s *Service) ListBodies(ctx context.Context, req ListBodiesRequest) (string, error) {
	req.Page.Clamp()

	orderBy := req.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}
	dir := "asc"
	if req.OrderDesc {
		dir = "desc"
	}

	var filters []string
	if req.BodyType != "" {
		filters = append(filters, "bodyType,eq,"+req.BodyType)
	}
	if req.IsPlanet != nil {
		filters = append(filters, boolFilter("isPlanet", *req.IsPlanet))
	}

	all, err := s.fetchBodies(ctx, filters, orderBy+","+dir)
	if err != nil {
		return "", &ServiceError{Op: "list_bodies", Err: err}
	}

	recs, total := window(all, req.Page)
	return respond("list_bodies", recs, total, req.Page, "Solar System Bodies", nil)
}

// GetBody returns one celestial body by its upstream id.
func (s *Service) GetBody(ctx context.Context, bodyID string, format render.Format) (string, error) {
	body, err := s.client.Get(ctx, "bodies/"+bodyID, nil)
	if err != nil {
		return "", &ServiceError{Op: "get_body", Err: err}
	}

	raw, err := decodeRecord(body)
	if err != nil {
		return "", &ServiceError{Op: "get_body", Err: err}
	}

	item, err := bodyItem(raw)
	if err != nil {
		return "", &ServiceError{Op: "get_body", Err: err}
	}

	out, err := render.DispatchOne(format, item)
	if err != nil {
		return "", &ServiceError{Op: "get_body", Err: err}
	}
	return out, nil
}

// SearchBodies matches bodies whose english name contains query.
func (s *Service) SearchBodies(ctx context.Context, query string, page render.PageRequest) (string, error) {
	page.Clamp()

	all, err := s.fetchBodies(ctx, []string{"englishName,cs," + query}, "id,asc")
	if err != nil {
		return "", &ServiceError{Op: "search_bodies", Err: err}
	}

	recs, total := window(all, page)
	title := fmt.Sprintf("Search Results: '%s'", query)
	return respond("search_bodies", recs, total, page, title, map[string]any{"query": query})
}

// FilterBodiesRequest carries physical-characteristic bounds. Nil means the
// bound is not applied.
type FilterBodiesRequest struct {
	Page       render.PageRequest
	MinRadius  *float64
	MaxRadius  *float64
	MinGravity *float64
	MaxGravity *float64
	MinDensity *float64
	MaxDensity *float64
	HasMoons   *bool
}

// FilterBodies filters bodies by physical characteristics. Range bounds are
// pushed down to the upstream; the moon predicate is applied locally since
// the upstream cannot express it.
func (s *Service) FilterBodies(ctx context.Context, req FilterBodiesRequest) (string, error) {
	req.Page.Clamp()

	var filters []string
	add := func(field, op string, v *float64) {
		if v != nil {
			filters = append(filters, fmt.Sprintf("%s,%s,%v", field, op, *v))
		}
	}
	add("meanRadius", "ge", req.MinRadius)
	add("meanRadius", "le", req.MaxRadius)
	add("gravity", "ge", req.MinGravity)
	add("gravity", "le", req.MaxGravity)
	add("density", "ge", req.MinDensity)
	add("density", "le", req.MaxDensity)

	all, err := s.fetchBodies(ctx, filters, "meanRadius,desc")
	if err != nil {
		return "", &ServiceError{Op: "filter_bodies", Err: err}
	}

	if req.HasMoons != nil {
		filtered := all[:0:0]
		for _, rec := range all {
			moons, _ := rec["moons"].([]any)
			if (len(moons) > 0) == *req.HasMoons {
				filtered = append(filtered, rec)
			}
		}
		all = filtered
	}

	recs, total := window(all, req.Page)
	return respond("filter_bodies", recs, total, req.Page, "Filtered Bodies", nil)
}

// GetMoons lists the moons orbiting a planet, largest first.
func (s *Service) GetMoons(ctx context.Context, planetID string, page render.PageRequest) (string, error) {
	page.Clamp()

	all, err := s.fetchBodies(ctx, []string{"aroundPlanet,eq," + planetID}, "meanRadius,desc")
	if err != nil {
		return "", &ServiceError{Op: "get_moons", Err: err}
	}

	recs, total := window(all, page)
	title := "Moons of " + titleCase(planetID)
	return respond("get_moons", recs, total, page, title, map[string]any{"planet": planetID})
}

// Planets lists the planets ordered by distance from the sun.
func (s *Service) Planets(ctx context.Context, page render.PageRequest) (string, error) {
	page.Clamp()

	all, err := s.fetchBodies(ctx, []string{"isPlanet,eq,true"}, "semimajorAxis,asc")
	if err != nil {
		return "", &ServiceError{Op: "planets", Err: err}
	}

	recs, total := window(all, page)
	return respond("planets", recs, total, page, "Planets of the Solar System", nil)
}

// DwarfPlanets lists the dwarf planets ordered by distance from the sun.
func (s *Service) DwarfPlanets(ctx context.Context, page render.PageRequest) (string, error) {
	page.Clamp()

	all, err := s.fetchBodies(ctx, []string{"bodyType,eq,Dwarf Planet"}, "semimajorAxis,asc")
	if err != nil {
		return "", &ServiceError{Op: "dwarf_planets", Err: err}
	}

	recs, total := window(all, page)
	return respond("dwarf_planets", recs, total, page, "Dwarf Planets of the Solar System", nil)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
