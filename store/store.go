package store

import "context"

/**
 * Store is the key-value slot the editor persists its autosave record into.
 * Values are addressed by prefix + key.
 */
type Store interface {
	/**
	 * Get an unexists prefix + key returns nil value and nil error
	 */
	Get(ctx context.Context, prefix, key string) ([]byte, error)
	/**
	 * Set writes the whole value at once, it either succeeds or leaves
	 * the previous value in place.
	 */
	Set(ctx context.Context, prefix, key string, value []byte) error
	/**
	 * Remove a prefix and key
	 * remove an unexists prefix + key would NOT return error
	 */
	Remove(ctx context.Context, prefix, key string) error
}
