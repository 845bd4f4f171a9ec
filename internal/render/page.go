package render

// Paging bounds applied to every list request
const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 20
)

// PageRequest represents caller paging intent. Out-of-range values are
// corrected by Clamp rather than rejected.
type PageRequest struct {
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Format Format `json:"format,omitempty"`
}

// Clamp normalizes the request in place: limit into [MinLimit, MaxLimit]
// (zero means DefaultLimit), offset to >= 0. It never fails.
func (r *PageRequest) Clamp() {
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit < MinLimit {
		r.Limit = MinLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// PageResult describes the effective page window after a fetch.
type PageResult struct {
	Total      int  `json:"total"`
	Returned   int  `json:"returned"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"has_more"`
	NextOffset *int `json:"next_offset"`
}

// ComputePage derives the page window from the requested parameters, the
// upstream total and the number of items actually fetched. Inputs are
// clamped the same way Clamp does, so callers that skipped Clamp still get
// a valid window. An offset beyond the total yields an empty page, not an
// error.
func ComputePage(limit, offset, total, fetched int) PageResult {
	req := PageRequest{Limit: limit, Offset: offset}
	req.Clamp()

	res := PageResult{
		Total:    total,
		Returned: fetched,
		Offset:   req.Offset,
		HasMore:  total > req.Offset+fetched,
	}
	if res.HasMore {
		next := req.Offset + fetched
		res.NextOffset = &next
	}
	return res
}
