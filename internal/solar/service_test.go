package solar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solarscope/internal/config"
	"solarscope/internal/render"
	"solarscope/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeUpstream(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := config.Cfg{
		Upstream: config.UpstreamCfg{BaseURL: ts.URL, Timeout: 5 * time.Second},
		Cache:    config.CacheCfg{TTL: time.Minute},
	}
	return NewService(upstream.New(cfg, nil))
}

func bodiesHandler(t *testing.T, bodies []map[string]any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bodies", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"bodies": bodies})
	}
}

func tinyBodies() []map[string]any {
	return []map[string]any{
		{"id": "mercure", "englishName": "Mercury", "bodyType": "Planet"},
		{"id": "venus", "englishName": "Venus", "bodyType": "Planet"},
		{"id": "terre", "englishName": "Earth", "bodyType": "Planet"},
	}
}

func TestListBodiesJSONWindow(t *testing.T) {
	svc := fakeUpstream(t, bodiesHandler(t, tinyBodies()))

	out, err := svc.ListBodies(context.Background(), ListBodiesRequest{
		Page: render.PageRequest{Limit: 2, Format: render.FormatJSON},
	})
	require.NoError(t, err)

	var decoded struct {
		Total      int              `json:"total"`
		Count      int              `json:"count"`
		Offset     int              `json:"offset"`
		HasMore    bool             `json:"has_more"`
		NextOffset *int             `json:"next_offset"`
		Items      []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 3, decoded.Total)
	assert.Equal(t, 2, decoded.Count)
	assert.True(t, decoded.HasMore)
	require.NotNil(t, decoded.NextOffset)
	assert.Equal(t, 2, *decoded.NextOffset)
	assert.Equal(t, "mercure", decoded.Items[0]["id"])
	assert.Equal(t, "venus", decoded.Items[1]["id"])
}

func TestListBodiesSecondWindow(t *testing.T) {
	svc := fakeUpstream(t, bodiesHandler(t, tinyBodies()))

	out, err := svc.ListBodies(context.Background(), ListBodiesRequest{
		Page: render.PageRequest{Limit: 2, Offset: 2},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, float64(1), decoded["count"])
	assert.Equal(t, false, decoded["has_more"])
	assert.Nil(t, decoded["next_offset"])
}

func TestListBodiesMarkdown(t *testing.T) {
	svc := fakeUpstream(t, bodiesHandler(t, tinyBodies()))

	out, err := svc.ListBodies(context.Background(), ListBodiesRequest{
		Page: render.PageRequest{Limit: 2, Format: render.FormatMarkdown},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "# Solar System Bodies")
	assert.Contains(t, out, "Showing 2 of 3 (offset: 0)")
	assert.Contains(t, out, "## Mercury (ID: mercure)")
	assert.Contains(t, out, "Use offset=2 for the next page")
}

func TestListBodiesPushesFilters(t *testing.T) {
	var gotFilters []string
	var gotOrder string
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotFilters = r.URL.Query()["filter[]"]
		gotOrder = r.URL.Query().Get("order")
		_ = json.NewEncoder(w).Encode(map[string]any{"bodies": []map[string]any{}})
	})

	isPlanet := true
	_, err := svc.ListBodies(context.Background(), ListBodiesRequest{
		Page:      render.PageRequest{},
		BodyType:  "Moon",
		IsPlanet:  &isPlanet,
		OrderBy:   "gravity",
		OrderDesc: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bodyType,eq,Moon", "isPlanet,eq,true"}, gotFilters)
	assert.Equal(t, "gravity,desc", gotOrder)
}

func TestSearchBodiesEchoesQuery(t *testing.T) {
	svc := fakeUpstream(t, bodiesHandler(t, tinyBodies()[:1]))

	out, err := svc.SearchBodies(context.Background(), "mer", render.PageRequest{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "mer", decoded["query"])
	assert.Equal(t, float64(1), decoded["count"])
}

func TestFilterBodiesHasMoonsAppliedLocally(t *testing.T) {
	bodies := []map[string]any{
		{"id": "terre", "englishName": "Earth", "moons": []any{map[string]any{"moon": "La Lune"}}},
		{"id": "venus", "englishName": "Venus"},
	}
	svc := fakeUpstream(t, bodiesHandler(t, bodies))

	hasMoons := true
	out, err := svc.FilterBodies(context.Background(), FilterBodiesRequest{HasMoons: &hasMoons})
	require.NoError(t, err)

	var decoded struct {
		Total int              `json:"total"`
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 1, decoded.Total)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, "terre", decoded.Items[0]["id"])
}

func TestGetBodyMarkdown(t *testing.T) {
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bodies/terre", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "terre", "englishName": "Earth", "bodyType": "Planet",
		})
	})

	out, err := svc.GetBody(context.Background(), "terre", render.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "## Earth (ID: terre)\n**Type**: Planet", out)
}

func TestGetBodyMalformedRecordFailsWhole(t *testing.T) {
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"bodyType": "Planet"})
	})

	out, err := svc.GetBody(context.Background(), "x", render.FormatJSON)
	assert.Empty(t, out)
	var missing *render.MissingFieldError
	require.ErrorAs(t, err, &missing)
}

func TestGetMoonsEchoesPlanet(t *testing.T) {
	var gotFilters []string
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotFilters = r.URL.Query()["filter[]"]
		_ = json.NewEncoder(w).Encode(map[string]any{"bodies": []map[string]any{
			{"id": "io", "englishName": "Io"},
		}})
	})

	out, err := svc.GetMoons(context.Background(), "jupiter", render.PageRequest{Format: render.FormatMarkdown})
	require.NoError(t, err)
	assert.Equal(t, []string{"aroundPlanet,eq,jupiter"}, gotFilters)
	assert.Contains(t, out, "# Moons of Jupiter")
	assert.Contains(t, out, "Found 1 item(s)")
}

func TestKnownCounts(t *testing.T) {
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/knowncount", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"knowncount": []map[string]any{
			{"id": "asteroids", "knownCount": 1113527.0, "updateDate": "2021-05-14"},
			{"id": "comets", "knownCount": 3743.0, "updateDate": "2021-05-14"},
		}})
	})

	out, err := svc.KnownCounts(context.Background(), render.PageRequest{Format: render.FormatMarkdown})
	require.NoError(t, err)
	assert.Contains(t, out, "# Known Object Counts")
	assert.Contains(t, out, "## asteroids (ID: asteroids)")
	assert.Contains(t, out, "**Known Count**: 3,743")
}

func TestKnownCountSingle(t *testing.T) {
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/knowncount/comets", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "comets", "knownCount": 3743.0, "updateDate": "2021-05-14",
		})
	})

	out, err := svc.KnownCount(context.Background(), "comets", render.FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "comets", decoded["id"])
	assert.Equal(t, float64(3743), decoded["knownCount"])
}

func TestPositionsValidation(t *testing.T) {
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for invalid coordinates")
	})

	_, err := svc.Positions(context.Background(), PositionsRequest{Latitude: 91})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Msg, "latitude")

	_, err = svc.Positions(context.Background(), PositionsRequest{Longitude: -200})
	require.ErrorAs(t, err, &validation)

	_, err = svc.Positions(context.Background(), PositionsRequest{TimezoneOffset: 15})
	require.ErrorAs(t, err, &validation)
}

func TestPositionsMarkdown(t *testing.T) {
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/positions", r.URL.Path)
		assert.Equal(t, "-1.3", r.URL.Query().Get("lat"))
		assert.Equal(t, "36.8", r.URL.Query().Get("lon"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"location":  map[string]any{"lat": -1.3, "lon": 36.8, "elev": 1700.0},
			"time_info": map[string]any{"utc": "2021-06-01T12:00:00", "local": "2021-06-01T15:00:00", "jd": 2459367.0},
			"positions": []map[string]any{
				{"name": "Mars", "ra": 14.2, "dec": -12.5, "az": 101.0, "alt": 45.3},
			},
		})
	})

	out, err := svc.Positions(context.Background(), PositionsRequest{
		Latitude:  -1.3,
		Longitude: 36.8,
		Elevation: 1700,
		Format:    render.FormatMarkdown,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "# Celestial Positions")
	assert.Contains(t, out, "## Observer Location")
	assert.Contains(t, out, "- Latitude: -1.3°")
	assert.Contains(t, out, "## Time Information")
	assert.Contains(t, out, "- UTC: 2021-06-01T12:00:00")
	assert.Contains(t, out, "## Mars (ID: Mars)")
	assert.Contains(t, out, "**Azimuth**: 101°")
}

func TestUpstreamErrorWrapped(t *testing.T) {
	svc := fakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := svc.GetBody(context.Background(), "nope", render.FormatJSON)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "get_body", svcErr.Op)

	var apiErr *upstream.APIError
	require.ErrorAs(t, err, &apiErr)
}
