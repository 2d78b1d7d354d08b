// Package redis connects to a Redis server for the session backend.
//
// Connect parses a redis:// URL, pings the server and retries according
// to Config until the server answers or the connect timeout elapses.
// Healthcheck returns a probe suitable for readiness endpoints.
//
//	cfg, err := config.Load[redis.Config]()
//	if err != nil {
//	    return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
package redis
