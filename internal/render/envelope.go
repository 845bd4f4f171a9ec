package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// reservedKeys are the fixed envelope keys; extras can never shadow them.
var reservedKeys = map[string]bool{
	"total":       true,
	"count":       true,
	"offset":      true,
	"has_more":    true,
	"next_offset": true,
	"items":       true,
}

// Envelope wraps an item sequence with its pagination metadata. Extra
// carries caller context (an echoed query, a parent id) alongside the fixed
// keys.
type Envelope struct {
	Page  PageResult
	Items []Item
	Extra map[string]any
}

// BuildEnvelope assembles the structured JSON result for a page of items.
func BuildEnvelope(items []Item, page PageResult, extra map[string]any) Envelope {
	return Envelope{Page: page, Items: items, Extra: extra}
}

// MarshalJSON emits the fixed keys in a fixed order, next_offset as an
// explicit null when absent, an empty items list as [], and extras after the
// fixed keys in sorted key order with reserved keys skipped.
func (e Envelope) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		v, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal envelope field %s: %w", key, err)
		}
		fmt.Fprintf(&buf, "%q:", key)
		buf.Write(v)
		return nil
	}

	if err := writeField("total", e.Page.Total); err != nil {
		return nil, err
	}
	if err := writeField("count", len(e.Items)); err != nil {
		return nil, err
	}
	if err := writeField("offset", e.Page.Offset); err != nil {
		return nil, err
	}
	if err := writeField("has_more", e.Page.HasMore); err != nil {
		return nil, err
	}
	if err := writeField("next_offset", e.Page.NextOffset); err != nil {
		return nil, err
	}

	items := e.Items
	if items == nil {
		items = []Item{}
	}
	if err := writeField("items", items); err != nil {
		return nil, err
	}

	var keys []string
	for k := range e.Extra {
		if !reservedKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writeField(k, e.Extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
