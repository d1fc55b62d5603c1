// Package memory provides an in-process SessionStorage for local development
// and single-instance deployments. Sessions do not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

type SessionStorage struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	data map[string]entry
}

func NewSessionStorage(ttl time.Duration) *SessionStorage {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStorage{ttl: ttl, now: time.Now, data: make(map[string]entry)}
}

func (s *SessionStorage) Get(_ context.Context, namespace, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := namespace + ":" + key
	e, ok := s.data[k]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.After(s.now()) {
		delete(s.data, k)
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *SessionStorage) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	s.data[namespace+":"+key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *SessionStorage) Delete(_ context.Context, namespace string, keys ...string) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.data, namespace+":"+k)
	}
	s.mu.Unlock()
	return nil
}

func (s *SessionStorage) Ping(context.Context) error { return nil }
