package broadcast

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisBus implements Bus on top of Redis pub/sub. It is the production
// backbone: every process publishing or subscribing through the same Redis
// instance shares one logical bus. The client is owned by the caller and is
// not closed by the bus.
type RedisBus struct {
	client     redis.UniversalClient
	bufferSize int
}

// NewRedisBus wraps an existing Redis client. bufferSize sets the
// per-subscriber delivery buffer; a minimum of 1 is enforced.
func NewRedisBus(client redis.UniversalClient, bufferSize int) *RedisBus {
	return &RedisBus{
		client:     client,
		bufferSize: max(bufferSize, 1),
	}
}

// Publish sends the payload to the channel via Redis PUBLISH.
func (b *RedisBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Subscribe opens a Redis SUBSCRIBE on the channel. It waits for the
// subscription confirmation before returning, so a payload published after
// Subscribe returns is guaranteed to reach the subscriber.
func (b *RedisBus) Subscribe(ctx context.Context, channel string) (Subscriber, error) {
	ps := b.client.Subscribe(ctx, channel)

	// Receive blocks until the SUBSCRIBE is confirmed by the server.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, errors.Join(ErrSubscribeFailed, err)
	}

	sub := &redisSubscriber{
		ps:  ps,
		out: make(chan []byte, b.bufferSize),
	}
	go sub.pump()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			_ = sub.Close()
		}()
	}

	return sub, nil
}

// Close is a no-op: the underlying client is owned by the caller and
// individual subscriptions are released via Subscriber.Close.
func (b *RedisBus) Close() error {
	return nil
}

type redisSubscriber struct {
	ps        *redis.PubSub
	out       chan []byte
	closeOnce sync.Once
}

func (s *redisSubscriber) Messages() <-chan []byte {
	return s.out
}

func (s *redisSubscriber) Close() error {
	var err error
	s.closeOnce.Do(func() {
		// Closing the PubSub unsubscribes and closes its message channel,
		// which terminates the pump and closes out.
		err = s.ps.Close()
	})
	return err
}

// pump forwards Redis messages into the outbound channel until the
// subscription is closed. Payloads are dropped when the buffer is full so a
// consumer that stopped draining cannot wedge the pump.
func (s *redisSubscriber) pump() {
	defer close(s.out)
	for msg := range s.ps.Channel() {
		select {
		case s.out <- []byte(msg.Payload):
		default:
		}
	}
}
