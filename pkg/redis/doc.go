// Package redis connects the toolkit to its backing store.
//
// It wraps the go-redis client with a retrying Connect, an env-driven
// Config, and a Healthcheck probe for readiness endpoints. The resulting
// client carries go-redis's own reconnect policy and is handed to
// counterstore.NewRedisStore, which implements the storage contract the
// login guard and trending engine consume.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // terminate: the store is required at startup
//	}
//	defer client.Close()
//
//	store := counterstore.NewRedisStore(client)
package redis
