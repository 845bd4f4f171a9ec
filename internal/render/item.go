package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Required keys every renderable record must carry.
const (
	KeyID   = "id"
	KeyName = "name"
)

// MissingFieldError is the only validation failure normalization can
// produce: a record arrived without its identifier or display name.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "record is missing required field " + e.Field
}

// Attr is one field of an item. Key selects the JSON representation
// (empty means markdown-only), Label selects the markdown representation
// (empty means JSON-only). Text, when set, overrides the markdown value
// shown for the attr; otherwise Value is printed as-is.
type Attr struct {
	Key   string
	Label string
	Value any
	Text  string
}

// Item is the normalized form of one upstream record: the required
// identifier and display name, plus an ordered open set of attrs.
// Items are never mutated after construction.
type Item struct {
	ID    string
	Name  string
	Attrs []Attr
}

// Normalize validates the required fields of a raw record and carries every
// other field through as a JSON-only attr. Known-field ordering is supplied
// by the caller via order; keys absent from order are appended sorted so the
// result is deterministic regardless of map iteration.
func Normalize(raw map[string]any, order []string) (Item, error) {
	id, ok := stringField(raw, KeyID)
	if !ok {
		return Item{}, &MissingFieldError{Field: KeyID}
	}
	name, ok := stringField(raw, KeyName)
	if !ok {
		return Item{}, &MissingFieldError{Field: KeyName}
	}

	item := Item{ID: id, Name: name}
	seen := map[string]bool{KeyID: true, KeyName: true}

	for _, k := range order {
		if seen[k] {
			continue
		}
		if v, ok := raw[k]; ok {
			item.Attrs = append(item.Attrs, Attr{Key: k, Value: v})
			seen[k] = true
		}
	}

	var rest []string
	for k := range raw {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		item.Attrs = append(item.Attrs, Attr{Key: k, Value: raw[k]})
	}

	return item, nil
}

func stringField(raw map[string]any, key string) (string, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", false
	}
	s := fmt.Sprintf("%v", v)
	if s == "" {
		return "", false
	}
	return s, true
}

// MarshalJSON writes id and name first, then each keyed attr in item order,
// so serialization is stable for identical inputs.
func (it Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal field %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if err := writeField(KeyID, it.ID); err != nil {
		return nil, err
	}
	if err := writeField(KeyName, it.Name); err != nil {
		return nil, err
	}
	for _, a := range it.Attrs {
		if a.Key == "" {
			continue
		}
		if err := writeField(a.Key, a.Value); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
