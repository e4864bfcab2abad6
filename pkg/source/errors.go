// Package source provides the spot price source adapter.
package source

import "errors"

var (
	// ErrTransport indicates that the request did not complete.
	ErrTransport = errors.New("transport failure")
	// ErrUnexpectedStatus indicates a non-2xx HTTP status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status code")
	// ErrDecode indicates that the body is not the expected JSON document.
	ErrDecode = errors.New("failed to decode response")
	// ErrMissingField indicates that the nested price field is absent.
	ErrMissingField = errors.New("missing field in response")
	// ErrFormat indicates that the price string does not parse as a number.
	ErrFormat = errors.New("invalid price format")
	// ErrUnknownSource indicates that no adapter is registered under the configured name.
	ErrUnknownSource = errors.New("unknown source")
)

// Kind names the failure class of err for diagnostics and metrics labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrUnexpectedStatus):
		return "status"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrFormat):
		return "format"
	default:
		return "other"
	}
}
