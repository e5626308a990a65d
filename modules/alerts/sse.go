package alerts

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter frames session output as Server-Sent Events: data frames as a
// "data:" line terminated by a blank line, keep-alives as comment frames a
// compliant consumer ignores. Every frame is flushed immediately.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares the response for event streaming: it verifies the
// writer can flush, sets the stream headers (including the ones disabling
// intermediary buffering and caching), and commits the 200 status.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// Event writes one data frame. A write error indicates the client is gone.
func (s *SSEWriter) Event(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// KeepAlive writes one comment frame carrying no payload.
func (s *SSEWriter) KeepAlive() error {
	if _, err := fmt.Fprint(s.w, ": keep-alive\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
