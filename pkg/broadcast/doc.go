// Package broadcast provides channel-addressed publish/subscribe with no
// backlog: a payload reaches only the subscribers registered at the moment
// of publish. It is the fanout layer of the relay; replay of past state is
// the responsibility of a separate last-value cache.
//
// Two implementations are provided:
//
//   - MemoryBus: in-process, for tests and single-node development.
//   - RedisBus: Redis pub/sub, the production backbone shared across
//     processes.
//
// Basic usage:
//
//	bus := broadcast.NewMemoryBus(32)
//	defer bus.Close()
//
//	sub, err := bus.Subscribe(ctx, "alerts_channel-default")
//	if err != nil {
//		return err
//	}
//	defer sub.Close()
//
//	_ = bus.Publish(ctx, "alerts_channel-default", payload)
//
//	for payload := range sub.Messages() {
//		// handle payload
//	}
//
// Delivery is best effort. A subscriber whose buffer is full misses the
// payload with no redelivery; consumers that need the current state read it
// from the last-value cache instead.
package broadcast
