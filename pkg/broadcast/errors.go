package broadcast

import "errors"

var (
	// ErrBusClosed is returned when publishing on a closed bus.
	ErrBusClosed = errors.New("broadcast: bus is closed")

	// ErrPublishFailed wraps transport errors from Publish.
	ErrPublishFailed = errors.New("broadcast: publish failed")

	// ErrSubscribeFailed wraps transport errors from Subscribe.
	ErrSubscribeFailed = errors.New("broadcast: subscribe failed")
)
