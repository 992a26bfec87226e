package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PropertyError reports a missing or malformed feature property.
type PropertyError struct {
	Key    string
	Reason string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("property %s: %s", e.Key, e.Reason)
}

// Properties is the attribute map of a GeoJSON feature.
type Properties map[string]any

// String returns the trimmed string value of key. Numbers are formatted the
// way they appear in the source JSON. ok is false when the key is absent, null
// or blank.
func (p Properties) String(key string) (string, bool) {
	v, present := p[key]
	if !present || v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// RequiredString is String that fails with a PropertyError when the value is
// absent or blank.
func (p Properties) RequiredString(key string) (string, error) {
	s, ok := p.String(key)
	if !ok {
		return "", &PropertyError{Key: key, Reason: "missing"}
	}
	return s, nil
}

// Number returns the numeric value of key. JSON numbers and numeric strings
// are accepted; anything else is a PropertyError.
func (p Properties) Number(key string) (float64, error) {
	v, present := p[key]
	if !present || v == nil {
		return 0, &PropertyError{Key: key, Reason: "missing"}
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, &PropertyError{Key: key, Reason: fmt.Sprintf("not a number: %q", t.String())}
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(t, ",", "")), 64)
		if err != nil {
			return 0, &PropertyError{Key: key, Reason: fmt.Sprintf("not a number: %q", t)}
		}
		f = n
	default:
		return 0, &PropertyError{Key: key, Reason: fmt.Sprintf("unexpected type %T", v)}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &PropertyError{Key: key, Reason: "not finite"}
	}
	return f, nil
}
