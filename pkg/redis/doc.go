// Package redis wraps the go-redis client with connection helpers used by
// the relay: a Connect that retries until the server is reachable, an
// env-driven Config, and a readiness probe for the health endpoint.
//
// The relay uses one shared client for both the last-value cache and the
// pub/sub backbone; construct it once at startup and inject it:
//
//	cfg := redis.Config{}
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// terminate, the relay cannot run without its backbone
//	}
//	defer client.Close()
package redis
