package alerts

import "errors"

var (
	// ErrInvalidAlert is returned when a submitted payload is not a mapping
	// of string keys to scalar values.
	ErrInvalidAlert = errors.New("alerts: payload must be a mapping of string keys to scalar values")

	// ErrNotFound is returned by a Store when no entry exists for the key.
	ErrNotFound = errors.New("alerts: no cached alert")

	// ErrMalformedPayload is returned when a cache entry or bus payload
	// cannot be decoded.
	ErrMalformedPayload = errors.New("alerts: malformed alert payload")

	// ErrStoreUnavailable wraps last-value store failures.
	ErrStoreUnavailable = errors.New("alerts: last-value store unavailable")

	// ErrBusUnavailable wraps broadcast bus failures.
	ErrBusUnavailable = errors.New("alerts: broadcast bus unavailable")

	// ErrStreamingUnsupported is returned when the response writer cannot
	// flush, which server-sent events require.
	ErrStreamingUnsupported = errors.New("alerts: response writer does not support streaming")
)
