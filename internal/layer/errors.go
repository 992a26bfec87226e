package layer

import (
	"errors"
	"fmt"
)

// FetchError reports a layer whose endpoint could not be read: a network
// failure, a non-2xx response, or exhausted retries.
type FetchError struct {
	Layer      Kind
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s layer from %s: status %d: %v", e.Layer, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s layer from %s: %v", e.Layer, e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// FormatError reports a payload that is not the expected GeoJSON, or a
// feature whose properties do not match its layer's record type. Collection
// and Feature are -1 when the whole document is unreadable.
type FormatError struct {
	Layer      Kind
	Collection int
	Feature    int
	Key        string
	Err        error
}

func (e *FormatError) Error() string {
	if e.Feature < 0 {
		return fmt.Sprintf("decode %s layer: %v", e.Layer, e.Err)
	}
	return fmt.Sprintf("decode %s layer: collection %d feature %d: %v", e.Layer, e.Collection, e.Feature, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsFetchError reports whether err carries a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsFormatError reports whether err carries a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// Classify names the error class for reports and logs.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case IsFetchError(err):
		return "fetch"
	case IsFormatError(err):
		return "format"
	default:
		return "internal"
	}
}
