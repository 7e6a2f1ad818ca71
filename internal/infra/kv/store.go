// Package kv provides the string key/value stores that back the promotions
// state. Every implementation scopes its keys by a namespace.
package kv

import "context"

type Store interface {
	// GetMany returns the values of the keys that exist. Missing keys are
	// absent from the result.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	// SetMany writes all entries or none of them.
	SetMany(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close(ctx context.Context) error
}
