package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RawRecord is an open mapping of source field names to values as they
// arrive from the catalogue. Field names and formats vary across feeds
// and across records; nothing here is trusted.
type RawRecord map[string]any

// Text returns the trimmed string form of the first key that carries a
// non-blank value. Numeric values are formatted, everything else is
// ignored.
func (r RawRecord) Text(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case json.Number:
			s = t.String()
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case int:
			s = strconv.Itoa(t)
		case bool:
			continue
		default:
			s = fmt.Sprint(t)
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return ""
}

// Number returns the first key that parses as a number.
func (r RawRecord) Number(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			return t, true
		case int:
			return float64(t), true
		case json.Number:
			if f, err := t.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// Flag interprets the first present key as a boolean. Source feeds spell
// truth as true, 1, "1", "true", "yes" or "y".
func (r RawRecord) Flag(keys ...string) bool {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t
		case float64:
			return t != 0
		case int:
			return t != 0
		case json.Number:
			f, err := t.Float64()
			return err == nil && f != 0
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "1", "true", "yes", "y":
				return true
			default:
				return false
			}
		}
	}
	return false
}
