package broadcast

import (
	"context"
	"sync"
)

// MemoryBus is an in-process Bus keyed by channel name. Payload delivery is
// non-blocking: when a subscriber's buffer is full the payload is dropped
// for that subscriber rather than blocking the publisher.
// All methods are safe for concurrent use.
type MemoryBus struct {
	channels   map[string]map[*memorySubscriber]struct{}
	bufferSize int
	closed     bool
	mu         sync.RWMutex
	cleanupWg  sync.WaitGroup
}

// NewMemoryBus creates an in-memory bus. bufferSize sets the per-subscriber
// channel buffer; a minimum of 1 is enforced so sends stay non-blocking.
func NewMemoryBus(bufferSize int) *MemoryBus {
	return &MemoryBus{
		channels:   make(map[string]map[*memorySubscriber]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe registers a subscriber on the channel. The subscription is
// automatically released when ctx is cancelled. If the bus is already
// closed, a closed subscriber is returned.
func (b *MemoryBus) Subscribe(ctx context.Context, channel string) (Subscriber, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &memorySubscriber{
		bus:     b,
		channel: channel,
		ch:      make(chan []byte, b.bufferSize),
	}

	if b.closed {
		_ = sub.Close()
		return sub, nil
	}

	subs, ok := b.channels[channel]
	if !ok {
		subs = make(map[*memorySubscriber]struct{})
		b.channels[channel] = subs
	}
	subs[sub] = struct{}{}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			<-ctx.Done()
			_ = sub.Close()
		}()
	}

	return sub, nil
}

// Publish delivers the payload to every subscriber currently registered on
// the channel. Full subscriber buffers drop the payload for that subscriber;
// Publish never blocks on a slow consumer.
func (b *MemoryBus) Publish(ctx context.Context, channel string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	for sub := range b.channels[channel] {
		sub.send(payload)
	}
	return nil
}

// Close shuts down the bus and closes every subscriber. Safe to call
// multiple times.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true

	for _, subs := range b.channels {
		for sub := range subs {
			sub.closeLocal()
		}
	}
	clear(b.channels)
	b.mu.Unlock()

	// Wait for context-cleanup goroutines so Close does not race them.
	b.cleanupWg.Wait()
	return nil
}

func (b *MemoryBus) unsubscribe(sub *memorySubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.channels[sub.channel]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.channels, sub.channel)
	}
}

type memorySubscriber struct {
	bus     *MemoryBus
	channel string
	ch      chan []byte
	closed  bool
	mu      sync.RWMutex
}

func (s *memorySubscriber) Messages() <-chan []byte {
	return s.ch
}

func (s *memorySubscriber) Close() error {
	s.bus.unsubscribe(s)
	s.closeLocal()
	return nil
}

// closeLocal closes the message channel without touching the bus registry.
// Used by MemoryBus.Close which already holds the bus lock.
func (s *memorySubscriber) closeLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

func (s *memorySubscriber) send(payload []byte) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- payload:
		return true
	default:
		return false
	}
}
