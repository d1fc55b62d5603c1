package socket

import (
	"sync"

	"github.com/rs/zerolog"
)

// Registry maps clients to their providers. It is the token observer of
// every session store, so a login opens the client's connection and a
// logout closes it.
type Registry struct {
	dialer  Dialer
	handler Handler
	backoff Backoff
	log     zerolog.Logger

	mu        sync.Mutex
	providers map[string]*Provider
	closed    bool
}

func NewRegistry(dialer Dialer, handler Handler, backoff Backoff, log zerolog.Logger) *Registry {
	return &Registry{
		dialer:    dialer,
		handler:   handler,
		backoff:   backoff,
		log:       log,
		providers: make(map[string]*Provider),
	}
}

// TokenChanged rebinds the client's provider. Calls are serialised so two
// token changes for one client can never race into two connections.
func (r *Registry) TokenChanged(clientID, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[clientID]
	if token == "" {
		if ok {
			delete(r.providers, clientID)
			p.Close()
		}
		return
	}
	if r.closed {
		return
	}
	if !ok {
		p = NewProvider(clientID, r.dialer, r.handler, r.backoff, r.log)
		r.providers[clientID] = p
	}
	p.SetToken(token)
}

// Active returns the number of clients with a bound provider.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.providers)
}

// CloseAll closes every connection and refuses new ones.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for id, p := range r.providers {
		p.Close()
		delete(r.providers, id)
	}
	r.log.Info().Msg("all sockets closed")
}
