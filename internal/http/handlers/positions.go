package handlers

import (
	"net/http"
	"strconv"

	"solarscope/internal/solar"
)

// Positions handles GET /api/v1/positions. Latitude and longitude are
// required; elevation, datetime and zone are optional.
func Positions(svc *solar.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			http.Error(w, "Error: lat and lon are required numeric parameters.", http.StatusBadRequest)
			return
		}

		req := solar.PositionsRequest{
			Latitude:    lat,
			Longitude:   lon,
			DatetimeUTC: r.URL.Query().Get("datetime"),
			Format:      parseFormat(r),
		}
		if v := queryFloat(r, "elev"); v != nil {
			req.Elevation = *v
		}
		if v := r.URL.Query().Get("zone"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				req.TimezoneOffset = n
			}
		}

		out, err := svc.Positions(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResult(w, req.Format, out)
	}
}
