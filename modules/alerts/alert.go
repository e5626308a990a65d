package alerts

import (
	"encoding/json"
	"time"
)

// Alert is a free-form monitoring event: a mapping of string keys to scalar
// values. Payloads are opaque to the relay beyond shape validation.
type Alert map[string]any

// Validate checks that every value is a scalar the relay accepts: a string
// or a number. JSON decoding produces float64 for all numbers; integer
// values arriving through code paths that bypass JSON are accepted too.
func (a Alert) Validate() error {
	if a == nil {
		return ErrInvalidAlert
	}
	for _, v := range a {
		switch v.(type) {
		case string, float64, int, int64, json.Number:
		default:
			return ErrInvalidAlert
		}
	}
	return nil
}

// StampedAlert is an alert plus the server-side ingestion timestamp. The
// timestamp is the sole authority for staleness decisions; it is never
// client supplied.
type StampedAlert struct {
	Data       Alert
	ReceivedAt time.Time
}

// Fresh reports whether the alert is still within the cache TTL at the
// given instant. Sessions must re-check freshness at the moment of use
// instead of trusting store-side expiry.
func (s StampedAlert) Fresh(now time.Time) bool {
	return now.Sub(s.ReceivedAt) < TTL
}

// Event converts the alert to its outbound stream representation.
func (s StampedAlert) Event() Event {
	return Event{Data: s.Data, ReceivedAt: s.ReceivedAt}
}

// Event is the payload of one data frame on the subscriber stream.
type Event struct {
	Data       Alert     `json:"data"`
	ReceivedAt time.Time `json:"received_at"`
}

// wireAlert is the serialized form shared by the last-value cache and the
// broadcast bus.
type wireAlert struct {
	Data      Alert  `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Encode serializes the alert for the cache and the bus.
func (s StampedAlert) Encode() ([]byte, error) {
	return json.Marshal(wireAlert{
		Data:      s.Data,
		Timestamp: s.ReceivedAt.Format(time.RFC3339Nano),
	})
}

// DecodeStamped parses a cache entry or bus payload back into a
// StampedAlert. It fails on malformed JSON, a missing payload, or an
// unparseable timestamp.
func DecodeStamped(raw []byte) (StampedAlert, error) {
	var w wireAlert
	if err := json.Unmarshal(raw, &w); err != nil {
		return StampedAlert{}, ErrMalformedPayload
	}
	if w.Data == nil {
		return StampedAlert{}, ErrMalformedPayload
	}
	ts, err := time.Parse(time.RFC3339Nano, w.Timestamp)
	if err != nil {
		return StampedAlert{}, ErrMalformedPayload
	}
	return StampedAlert{Data: w.Data, ReceivedAt: ts}, nil
}
