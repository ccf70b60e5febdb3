package kv

import "errors"

var (
	// ErrKeyNotFound is returned by Get when no value exists under the key.
	ErrKeyNotFound = errors.New("kv: key not found")

	// ErrFailedToParseConnString is returned when the Redis connection URL is invalid.
	ErrFailedToParseConnString = errors.New("kv: failed to parse redis connection string")

	// ErrRedisNotReady is returned when the Redis server cannot be reached
	// within the configured number of retries.
	ErrRedisNotReady = errors.New("kv: redis not ready")
)
