package apikey

import "errors"

var (
	// ErrMalformedKey is returned when a key secret cannot be decoded or
	// carries no username.
	ErrMalformedKey = errors.New("apikey: malformed key secret")
)
