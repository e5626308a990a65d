package alerts

import "time"

const (
	// DefaultGroup is used when the caller does not name a group. It is a
	// real group, not an absence of one: omitted and explicit "default"
	// route to the same keys.
	DefaultGroup = "default"

	// TTL bounds how long a cached alert may be served as current state.
	TTL = 30 * time.Minute

	// KeepAliveInterval is the idle-stream cadence for comment frames. It
	// also bounds how long a finished client can go undetected.
	KeepAliveInterval = 15 * time.Second

	statePrefix   = "latest_alert-"
	channelPrefix = "alerts_channel-"
)

// ResolveGroup maps an absent group name to DefaultGroup.
func ResolveGroup(group string) string {
	if group == "" {
		return DefaultGroup
	}
	return group
}

// StateKey returns the last-value cache key for a group.
func StateKey(group string) string {
	return statePrefix + group
}

// ChannelKey returns the broadcast bus channel for a group.
func ChannelKey(group string) string {
	return channelPrefix + group
}
