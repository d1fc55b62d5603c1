package ports

import "context"

// SessionStorage is the durable per-client store backing a session. Values
// live under a namespace derived from the client's session cookie.
type SessionStorage interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	// Delete removes the keys; missing keys are not an error.
	Delete(ctx context.Context, namespace string, keys ...string) error
	Ping(ctx context.Context) error
}

// TokenObserver is told whenever a client's token changes. An empty token
// means the client logged out.
type TokenObserver interface {
	TokenChanged(clientID, token string)
}
