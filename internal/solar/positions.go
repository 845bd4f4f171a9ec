package solar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"solarscope/internal/render"
)

// PositionsRequest locates an observer for a sky-position computation.
type PositionsRequest struct {
	Latitude       float64
	Longitude      float64
	Elevation      float64
	DatetimeUTC    string
	TimezoneOffset int
	Format         render.Format
}

func (r PositionsRequest) validate() error {
	if r.Latitude < -90 || r.Latitude > 90 {
		return &ValidationError{Msg: "latitude must be between -90 and +90 degrees"}
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return &ValidationError{Msg: "longitude must be between -180 and +180 degrees"}
	}
	if r.TimezoneOffset < -12 || r.TimezoneOffset > 14 {
		return &ValidationError{Msg: "timezone offset must be between -12 and +14"}
	}
	return nil
}

// Positions computes real-time positions of solar system objects as seen
// from the observer location. An empty datetime means now.
func (s *Service) Positions(ctx context.Context, req PositionsRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", &ServiceError{Op: "positions", Err: err}
	}

	dt := req.DatetimeUTC
	if dt == "" {
		dt = time.Now().UTC().Format("2006-01-02T15:04:05")
	}

	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	query.Set("elev", strconv.FormatFloat(req.Elevation, 'f', -1, 64))
	query.Set("datetime", dt)
	query.Set("zone", strconv.Itoa(req.TimezoneOffset))

	body, err := s.client.Get(ctx, "positions", query)
	if err != nil {
		return "", &ServiceError{Op: "positions", Err: err}
	}

	var result struct {
		Location  map[string]any   `json:"location"`
		TimeInfo  map[string]any   `json:"time_info"`
		Positions []map[string]any `json:"positions"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &ServiceError{Op: "positions", Err: fmt.Errorf("decode positions response: %w", err)}
	}

	if render.ParseFormat(string(req.Format)) != render.FormatMarkdown {
		var indented map[string]any
		if err := json.Unmarshal(body, &indented); err != nil {
			return "", &ServiceError{Op: "positions", Err: fmt.Errorf("decode positions response: %w", err)}
		}
		out, err := json.MarshalIndent(indented, "", "  ")
		if err != nil {
			return "", &ServiceError{Op: "positions", Err: err}
		}
		return string(out), nil
	}

	return s.positionsMarkdown(req, dt, result.Location, result.TimeInfo, result.Positions)
}

func (s *Service) positionsMarkdown(req PositionsRequest, dt string, location, timeInfo map[string]any, positions []map[string]any) (string, error) {
	var b strings.Builder
	b.WriteString("# Celestial Positions\n\n")

	b.WriteString("## Observer Location\n")
	fmt.Fprintf(&b, "- Latitude: %s°\n", display(valueOr(location, "lat", req.Latitude)))
	fmt.Fprintf(&b, "- Longitude: %s°\n", display(valueOr(location, "lon", req.Longitude)))
	fmt.Fprintf(&b, "- Elevation: %s m\n\n", display(valueOr(location, "elev", req.Elevation)))

	b.WriteString("## Time Information\n")
	fmt.Fprintf(&b, "- UTC: %s\n", display(valueOr(timeInfo, "utc", dt)))
	fmt.Fprintf(&b, "- Local: %s\n", display(valueOr(timeInfo, "local", "N/A")))
	fmt.Fprintf(&b, "- Julian Day: %s\n\n", display(valueOr(timeInfo, "jd", "N/A")))

	b.WriteString("## Object Positions\n")
	for _, pos := range positions {
		item, err := positionItem(pos)
		if err != nil {
			return "", &ServiceError{Op: "positions", Err: err}
		}
		b.WriteString("\n")
		b.WriteString(render.RenderOne(item))
		b.WriteString("\n")
	}

	return b.String(), nil
}

// display prints values the way a reader expects: floats in plain decimal
// notation, everything else as-is.
func display(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

func valueOr(m map[string]any, key string, fallback any) any {
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return fallback
}
