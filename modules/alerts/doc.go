// Package alerts is the relay's core: the alert broadcast engine.
//
// Producers submit free-form alerts into named groups. Each submission is
// stamped server-side, written to a last-value cache with a 30 minute TTL,
// and published on the group's broadcast channel. Subscribers open a
// long-lived event stream and receive the cached last value (if still
// fresh) followed by every subsequent submission, with keep-alive frames on
// idle streams.
//
// Groups are fully isolated: cache keys and bus channels are both
// namespaced per group, and a group exists only as long as it has a fresh
// cache entry or an active subscriber.
//
// The engine deliberately offers no history and no delivery guarantee
// beyond best effort to connected subscribers. The cache replays current
// state to late joiners; the bus fans out what happens next; nothing stores
// what happened in between.
package alerts
