package alerts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alertflow/relay/pkg/broadcast"
	"github.com/alertflow/relay/pkg/logger"
)

// Service is the alert broadcast engine: ingestion on one side, streaming
// sessions on the other, sharing a last-value store and a broadcast bus.
// Both collaborators are injected and must be safe for concurrent use; the
// service itself holds no mutable state.
type Service struct {
	store     Store
	bus       broadcast.Bus
	log       *slog.Logger
	metrics   *Metrics
	now       func() time.Time
	keepAlive time.Duration
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock injects a clock, used by tests to control freshness decisions.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMetrics attaches operational metrics.
func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithKeepAliveInterval overrides the idle-stream keep-alive cadence.
// Intended for tests; production uses KeepAliveInterval.
func WithKeepAliveInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.keepAlive = d
		}
	}
}

// NewService creates the alert engine around the given store and bus.
func NewService(store Store, bus broadcast.Bus, log *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store:     store,
		bus:       bus,
		log:       log,
		now:       time.Now,
		keepAlive: KeepAliveInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit accepts a new alert for the group: it validates the payload,
// stamps it with the server-side UTC receive time, writes it to the
// last-value store with the cache TTL, and publishes it on the group's bus
// channel. The store write strictly precedes the publish; together with
// sessions subscribing before they read the cache this guarantees a
// concurrently connecting subscriber observes the alert on at least one
// path.
//
// Repeated identical submissions are not deduplicated: each call re-stamps
// and re-publishes. Backend failures are surfaced, never swallowed.
func (s *Service) Submit(ctx context.Context, group string, payload Alert) (StampedAlert, error) {
	group = ResolveGroup(group)

	if err := payload.Validate(); err != nil {
		return StampedAlert{}, err
	}

	stamped := StampedAlert{
		Data:       payload,
		ReceivedAt: s.now().UTC(),
	}
	raw, err := stamped.Encode()
	if err != nil {
		return StampedAlert{}, errors.Join(ErrInvalidAlert, err)
	}

	if err := s.store.Put(ctx, StateKey(group), raw, TTL); err != nil {
		return StampedAlert{}, errors.Join(ErrStoreUnavailable, err)
	}
	if err := s.bus.Publish(ctx, ChannelKey(group), raw); err != nil {
		return StampedAlert{}, errors.Join(ErrBusUnavailable, err)
	}

	s.metrics.alertPublished(group)
	s.log.DebugContext(ctx, "alert stored and published",
		logger.Component("ingest"),
		slog.String("group", group),
		slog.Time("received_at", stamped.ReceivedAt),
	)
	return stamped, nil
}
