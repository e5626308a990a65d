package broadcast

import "context"

// Subscriber receives messages delivered on a single channel.
// Implementations must be safe for concurrent use.
type Subscriber interface {
	// Messages returns the channel on which delivered payloads arrive.
	// The channel is closed when the subscriber is closed.
	Messages() <-chan []byte

	// Close unsubscribes and releases resources. After Close the messages
	// channel is closed and no further payloads are delivered.
	// Close is idempotent and safe to call multiple times.
	Close() error
}

// Bus is a publish/subscribe primitive addressed by channel name.
//
// Publish delivers a payload to every subscriber registered on the channel
// at the moment of publish; subscribers registered afterward receive only
// subsequent payloads. There is no backlog replay. Delivery is best effort:
// a slow subscriber may miss payloads published while its buffer is full,
// with no redelivery.
//
// Payloads published to the same channel are delivered to each subscriber
// in publish order. No ordering is guaranteed across channels.
type Bus interface {
	// Publish sends the payload to all current subscribers of the channel.
	Publish(ctx context.Context, channel string, payload []byte) error

	// Subscribe registers a new subscriber on the channel. The returned
	// subscriber is live before Subscribe returns: any payload published
	// after that point is delivered to it. The subscription is released
	// when the context is cancelled or the subscriber is closed.
	Subscribe(ctx context.Context, channel string) (Subscriber, error)

	// Close shuts down the bus and closes all subscribers.
	Close() error
}
