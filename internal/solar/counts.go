package solar

import (
	"context"
	"encoding/json"
	"fmt"

	"solarscope/internal/render"
)

// KnownCounts lists the counts of known objects per category.
func (s *Service) KnownCounts(ctx context.Context, page render.PageRequest) (string, error) {
	page.Clamp()

	body, err := s.client.Get(ctx, "knowncount", nil)
	if err != nil {
		return "", &ServiceError{Op: "known_counts", Err: err}
	}

	var result struct {
		KnownCount []map[string]any `json:"knowncount"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &ServiceError{Op: "known_counts", Err: fmt.Errorf("decode knowncount response: %w", err)}
	}

	recs, total := window(result.KnownCount, page)
	items := make([]render.Item, 0, len(recs))
	for _, rec := range recs {
		item, err := countItem(rec)
		if err != nil {
			return "", &ServiceError{Op: "known_counts", Err: err}
		}
		items = append(items, item)
	}

	pageResult := render.ComputePage(page.Limit, page.Offset, total, len(items))
	out, err := render.Dispatch(page.Format, items, pageResult, "Known Object Counts", nil)
	if err != nil {
		return "", &ServiceError{Op: "known_counts", Err: err}
	}
	return out, nil
}

// KnownCount returns the count of known objects for one category.
func (s *Service) KnownCount(ctx context.Context, categoryID string, format render.Format) (string, error) {
	body, err := s.client.Get(ctx, "knowncount/"+categoryID, nil)
	if err != nil {
		return "", &ServiceError{Op: "known_count", Err: err}
	}

	raw, err := decodeRecord(body)
	if err != nil {
		return "", &ServiceError{Op: "known_count", Err: err}
	}

	item, err := countItem(raw)
	if err != nil {
		return "", &ServiceError{Op: "known_count", Err: err}
	}

	out, err := render.DispatchOne(format, item)
	if err != nil {
		return "", &ServiceError{Op: "known_count", Err: err}
	}
	return out, nil
}
