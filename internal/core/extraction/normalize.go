// Package extraction normalizes the semi-structured field payloads produced
// by the upstream document extractor. Any field may be absent, null, a
// sentinel string, a bare value, or a {value, confidence} wrapper; every
// accessor here resolves malformed input to "absent" instead of failing.
package extraction

import (
	"strconv"
	"strings"
	"time"
)

// Extraction is the raw nested payload: section name -> field name -> value,
// as decoded from JSON. It is consumed read-only.
type Extraction map[string]any

// sentinels that mean "the extractor found nothing".
var sentinels = map[string]struct{}{
	"":          {},
	"not_found": {},
	"N/A":       {},
	"null":      {},
}

func isSentinel(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, hit := sentinels[s]
	return hit
}

// Unwrap resolves a raw field to its inner value. A {value: X} wrapper yields
// X unless X is a sentinel; a bare sentinel yields absent; anything else is
// returned unchanged.
func Unwrap(field any) (any, bool) {
	if m, ok := field.(map[string]any); ok {
		if inner, has := m["value"]; has {
			if isSentinel(inner) {
				return nil, false
			}
			return inner, true
		}
	}
	if isSentinel(field) {
		return nil, false
	}
	return field, true
}

// String unwraps and coerces to a non-empty string.
func String(field any) (string, bool) {
	v, ok := Unwrap(field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// Number unwraps and coerces to float64. Numeric strings are accepted with
// thousands separators stripped; any conversion failure yields absent.
func Number(field any) (float64, bool) {
	v, ok := Unwrap(field)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Int is Number truncated toward zero.
func Int(field any) (int, bool) {
	n, ok := Number(field)
	if !ok {
		return 0, false
	}
	return int(n), true
}

// dateLayouts are tried in order; the first successful parse wins. The
// day-first layouts sit before formula-ish free text ever reaches them, so
// strings like "60 days from handover" fail every layout and come back absent.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"2 Jan 2006",
	"2 January 2006",
}

// Date unwraps and parses against the accepted layouts, returning a UTC
// midnight time. Non-string and unparsable input yields absent.
func Date(field any) (time.Time, bool) {
	v, ok := Unwrap(field)
	if !ok {
		return time.Time{}, false
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Section returns the named section as a field map, unwrapping one
// {value: {...}} level. It always returns a usable map so callers never
// special-case missing or malformed sections.
func Section(ex Extraction, name string) map[string]any {
	raw, has := ex[name]
	if !has {
		return map[string]any{}
	}
	if m, ok := raw.(map[string]any); ok {
		if inner, has := m["value"]; has {
			if innerMap, ok := inner.(map[string]any); ok {
				return innerMap
			}
		}
		return m
	}
	return map[string]any{}
}

// Enum accepts the raw value only if it is a case-insensitive member of the
// closed set, canonicalized to the set's own spelling.
func Enum(field any, allowed []string) (string, bool) {
	s, ok := String(field)
	if !ok {
		return "", false
	}
	for _, member := range allowed {
		if strings.EqualFold(s, member) {
			return member, true
		}
	}
	return "", false
}
