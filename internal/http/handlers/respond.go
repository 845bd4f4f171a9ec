package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"solarscope/internal/render"
	"solarscope/internal/solar"
	"solarscope/internal/upstream"
)

// parsePage reads the shared paging parameters. Malformed numbers are
// ignored and out-of-range values are clamped downstream, so paging never
// rejects a request.
func parsePage(r *http.Request) render.PageRequest {
	req := render.PageRequest{Format: parseFormat(r)}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Offset = n
		}
	}

	return req
}

func parseFormat(r *http.Request) render.Format {
	return render.ParseFormat(r.URL.Query().Get("format"))
}

func queryFloat(r *http.Request, key string) *float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// writeResult delivers the finished response text with the content type
// matching the format that produced it.
func writeResult(w http.ResponseWriter, format render.Format, out string) {
	if render.ParseFormat(string(format)) == render.FormatMarkdown {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write([]byte(out))
}

// writeError surfaces a pipeline failure as one plain-text line. Upstream
// failures keep their status, malformed upstream records read as a bad
// gateway, invalid caller arguments as a bad request.
func writeError(w http.ResponseWriter, err error) {
	var validation *solar.ValidationError
	if errors.As(err, &validation) {
		http.Error(w, "Error: "+validation.Msg+".", http.StatusBadRequest)
		return
	}

	var missing *render.MissingFieldError
	if errors.As(err, &missing) {
		http.Error(w, "Error: upstream "+missing.Error()+".", http.StatusBadGateway)
		return
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status := upstream.StatusCode(err)
		if status < 400 {
			status = http.StatusBadGateway
		}
		http.Error(w, upstream.Describe(err), status)
		return
	}

	http.Error(w, upstream.Describe(err), http.StatusBadGateway)
}
