// Package kv defines the key-value persistence contract used by the state
// layer and ships two implementations: an in-memory store for tests and
// single-process use, and a Redis-backed store for deployments where quota
// state must survive restarts.
//
// Store owners serialize their own state; the store only ever sees opaque
// strings under stable keys:
//
//	store := kv.NewMemoryStore()
//	if err := store.Set(ctx, "usage_limits", payload); err != nil {
//	    return err
//	}
//
// For Redis, connect once at startup and share the client:
//
//	client, err := kv.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := kv.NewRedisStore(client, cfg.KeyPrefix)
package kv
