package alerts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alertflow/relay/pkg/logger"
)

// Sink receives the output of a subscription session, one frame at a time.
// A sink error means the client is unreachable and ends the session.
type Sink interface {
	// Event emits one data frame.
	Event(ev Event) error

	// KeepAlive emits one content-free frame. It must be distinguishable
	// from data frames so stream consumers can ignore it.
	KeepAlive() error
}

// Stream runs one subscription session for a group against the sink,
// blocking until the context is cancelled or the sink fails.
//
// The session subscribes to the bus channel before reading the cache. A
// publish landing between those two steps is then seen on at least one
// path; the price is that it may be seen on both, and consumers treat a
// repeated received_at as the same alert. Subscribing after the read would
// invert that into a missed alert, which is the one outcome the engine
// must not allow.
//
// After the subscribe, the cached last value is replayed if one exists and
// is still fresh by its own timestamp. Then the session relays every bus
// payload as it arrives, emitting a keep-alive whenever the stream has been
// idle for the keep-alive interval. Malformed bus payloads are logged and
// dropped without ending the session. The bus subscription is released on
// every exit path.
func (s *Service) Stream(ctx context.Context, group string, sink Sink) error {
	group = ResolveGroup(group)

	sub, err := s.bus.Subscribe(ctx, ChannelKey(group))
	if err != nil {
		return errors.Join(ErrBusUnavailable, err)
	}
	defer sub.Close()

	s.metrics.subscriberConnected(group)
	defer s.metrics.subscriberDisconnected(group)

	s.log.DebugContext(ctx, "subscriber connected",
		logger.Component("session"), slog.String("group", group))
	defer s.log.DebugContext(ctx, "subscriber disconnected",
		logger.Component("session"), slog.String("group", group))

	if err := s.replay(ctx, group, sink); err != nil {
		return err
	}

	return s.live(ctx, group, sub.Messages(), sink)
}

// replay emits the cached last value when one exists and is fresh. An
// expired entry is treated as absent even if the store still returned it:
// freshness is decided against the embedded timestamp, not store expiry.
func (s *Service) replay(ctx context.Context, group string, sink Sink) error {
	raw, err := s.store.Get(ctx, StateKey(group))
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return errors.Join(ErrStoreUnavailable, err)
	}

	stamped, err := DecodeStamped(raw)
	if err != nil {
		s.log.WarnContext(ctx, "dropping malformed cached alert",
			logger.Component("session"), slog.String("group", group), logger.Error(err))
		return nil
	}
	if !stamped.Fresh(s.now()) {
		return nil
	}
	return sink.Event(stamped.Event())
}

// live relays bus payloads until the context ends or the sink fails,
// interleaving keep-alives on an idle stream. The wait is always bounded by
// the keep-alive ticker, so a vanished client is noticed within one
// interval even with no bus traffic.
func (s *Service) live(ctx context.Context, group string, messages <-chan []byte, sink Sink) error {
	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case payload, ok := <-messages:
			if !ok {
				return nil
			}
			stamped, err := DecodeStamped(payload)
			if err != nil {
				s.log.WarnContext(ctx, "dropping malformed bus payload",
					logger.Component("session"), slog.String("group", group), logger.Error(err))
				continue
			}
			if err := sink.Event(stamped.Event()); err != nil {
				return nil
			}
			ticker.Reset(s.keepAlive)

		case <-ticker.C:
			if err := sink.KeepAlive(); err != nil {
				return nil
			}
		}
	}
}
