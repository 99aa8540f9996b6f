package api

import (
	"strconv"
)

// Document is a loosely typed JSON object. Domain services use the Opt*
// accessors to pull expected fields out of server responses without
// panicking on missing or mistyped values.
type Document map[string]any

// Has reports whether key is present.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// OptString returns the value under key as a string, or def when the key is
// absent or not representable as a string. Numbers and booleans are
// stringified, matching the tolerant readers used elsewhere in the client.
func (d Document) OptString(key, def string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// encoding/json decodes every number as float64
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return def
	}
}

// OptInt returns the value under key as an int, or def.
func (d Document) OptInt(key string, def int) int {
	v, ok := d[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return def
}

// OptFloat returns the value under key as a float64, or def.
func (d Document) OptFloat(key string, def float64) float64 {
	v, ok := d[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return def
}

// OptBool returns the value under key as a bool, or def.
func (d Document) OptBool(key string, def bool) bool {
	v, ok := d[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(t); err == nil {
			return b
		}
	}
	return def
}

// Object returns the nested object under key, or nil when the key is absent
// or holds something that is not an object.
func (d Document) Object(key string) Document {
	switch t := d[key].(type) {
	case map[string]any:
		return Document(t)
	case Document:
		return t
	default:
		return nil
	}
}

// Objects returns the array of objects under key. Non-object elements are
// skipped. A missing key yields nil.
func (d Document) Objects(key string) []Document {
	arr, ok := d[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Document, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, Document(m))
		}
	}
	return out
}
