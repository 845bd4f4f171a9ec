package render

import (
	"encoding/json"
	"fmt"
)

// Format selects the output representation of a response.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a caller-supplied token to a Format. Anything that is
// not "markdown" falls back to JSON; format selection is advisory and never
// fails a request.
func ParseFormat(s string) Format {
	if Format(s) == FormatMarkdown {
		return FormatMarkdown
	}
	return FormatJSON
}

// Dispatch produces the final response text for a page of items in the
// requested format. Unrecognized formats take the JSON path.
func Dispatch(format Format, items []Item, page PageResult, title string, extra map[string]any) (string, error) {
	if ParseFormat(string(format)) == FormatMarkdown {
		return RenderMany(items, title, page), nil
	}

	env := BuildEnvelope(items, page, extra)
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return string(out), nil
}

// DispatchOne produces the response text for a single item: its markdown
// block, or the normalized record as indented JSON.
func DispatchOne(format Format, item Item) (string, error) {
	if ParseFormat(string(format)) == FormatMarkdown {
		return RenderOne(item), nil
	}

	out, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode item: %w", err)
	}
	return string(out), nil
}
