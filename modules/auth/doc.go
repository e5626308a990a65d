// Package auth guards the relay's HTTP surface with API keys. Keys embed
// their owning username (see pkg/apikey), are stored only as salted hashes
// in an embedded bbolt file, and are presented either as a bearer token or
// as an api_key query parameter.
//
// The alert engine itself has no knowledge of credentials; it consumes only
// the Identity this package places in the request context.
package auth
