// Package localstore persists the client-local state: a small key/value
// table in sqlite holding the serialized session record.
package localstore

import "context"

// SessionKey is the fixed key the session record lives under.
const SessionKey = "session"

// Repository is a key/value store over the local database.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
