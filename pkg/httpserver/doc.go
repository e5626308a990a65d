// Package httpserver wraps net/http.Server with graceful, signal-aware
// shutdown and env-driven configuration.
//
// The defaults are tuned for a streaming service: the write timeout is left
// at zero because the relay holds subscriber connections open indefinitely,
// and graceful shutdown gives in-flight streams a bounded window to close.
package httpserver
