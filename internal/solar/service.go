package solar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"solarscope/internal/render"
	"solarscope/internal/upstream"
)

// Service turns upstream Solar System API data into finished response text.
type Service struct {
	client *upstream.Client
}

func NewService(client *upstream.Client) *Service {
	return &Service{client: client}
}

// ServiceError wraps a failure with the operation it occurred in.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "solar service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ValidationError reports a caller-supplied argument outside its legal
// range. Unlike paging parameters these cannot be silently corrected.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// fetchBodies retrieves the full filtered body set. The upstream pages by
// page,size and returns no totals, so offset pagination is applied locally
// over the complete set; the response cache keeps the repeated full fetches
// cheap.
func (s *Service) fetchBodies(ctx context.Context, filters []string, order string) ([]map[string]any, error) {
	query := url.Values{}
	if order != "" {
		query.Set("order", order)
	}
	for _, f := range filters {
		query.Add("filter[]", f)
	}

	body, err := s.client.Get(ctx, "bodies", query)
	if err != nil {
		return nil, err
	}

	var result struct {
		Bodies []map[string]any `json:"bodies"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode bodies response: %w", err)
	}
	return result.Bodies, nil
}

// window slices the full record set to the requested page and reports the
// pre-slice total.
func window(all []map[string]any, req render.PageRequest) ([]map[string]any, int) {
	total := len(all)
	if req.Offset >= total {
		return nil, total
	}
	end := req.Offset + req.Limit
	if end > total {
		end = total
	}
	return all[req.Offset:end], total
}

// respond runs a windowed record set through the formatting contract.
func respond(op string, records []map[string]any, total int, req render.PageRequest, title string, extra map[string]any) (string, error) {
	items := make([]render.Item, 0, len(records))
	for _, rec := range records {
		item, err := bodyItem(rec)
		if err != nil {
			return "", &ServiceError{Op: op, Err: err}
		}
		items = append(items, item)
	}

	page := render.ComputePage(req.Limit, req.Offset, total, len(items))
	out, err := render.Dispatch(req.Format, items, page, title, extra)
	if err != nil {
		return "", &ServiceError{Op: op, Err: err}
	}
	return out, nil
}

func decodeRecord(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return raw, nil
}

func boolFilter(field string, v bool) string {
	return field + ",eq," + strconv.FormatBool(v)
}
