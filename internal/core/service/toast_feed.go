package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/metrics"
)

const (
	defaultToastTTL  = 5 * time.Second
	toastSubscribers = 16
)

// ToastFeed turns notifications into short-lived toasts. Active toasts
// expire on their own; live subscribers get each toast once, and a slow
// subscriber misses toasts rather than blocking delivery.
type ToastFeed struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	active map[string][]domain.Toast
	subs   map[string]map[int]chan domain.Toast
	nextID int
}

// NewToastFeed returns a feed whose base display time is ttl.
func NewToastFeed(ttl time.Duration) *ToastFeed {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	return &ToastFeed{
		ttl:    ttl,
		now:    time.Now,
		active: make(map[string][]domain.Toast),
		subs:   make(map[string]map[int]chan domain.Toast),
	}
}

// OnNotification shows n as a toast for the client.
func (f *ToastFeed) OnNotification(clientID string, n domain.Notification) {
	now := f.now()
	toast := domain.NewToast(n, uuid.NewString(), f.ttl, now)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.active[clientID] = append(pruneExpired(f.active[clientID], now), toast)
	for _, ch := range f.subs[clientID] {
		select {
		case ch <- toast:
			metrics.ToastsEmittedTotal.Inc()
		default:
		}
	}
}

// Active returns the client's toasts that have not yet been dismissed.
func (f *ToastFeed) Active(clientID string) []domain.Toast {
	now := f.now()

	f.mu.Lock()
	defer f.mu.Unlock()

	live := pruneExpired(f.active[clientID], now)
	if len(live) == 0 {
		delete(f.active, clientID)
		return []domain.Toast{}
	}
	f.active[clientID] = live
	out := make([]domain.Toast, len(live))
	copy(out, live)
	return out
}

// Subscribe streams the client's future toasts. The returned cancel func
// must be called when the subscriber goes away; it closes the channel.
func (f *ToastFeed) Subscribe(clientID string) (<-chan domain.Toast, func()) {
	ch := make(chan domain.Toast, toastSubscribers)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	if f.subs[clientID] == nil {
		f.subs[clientID] = make(map[int]chan domain.Toast)
	}
	f.subs[clientID][id] = ch
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if _, ok := f.subs[clientID][id]; !ok {
				return
			}
			delete(f.subs[clientID], id)
			if len(f.subs[clientID]) == 0 {
				delete(f.subs, clientID)
			}
			close(ch)
		})
	}
	return ch, cancel
}

// TokenChanged dismisses the client's toasts and ends its live
// subscriptions when it logs out.
func (f *ToastFeed) TokenChanged(clientID, token string) {
	if token != "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, clientID)
	for _, ch := range f.subs[clientID] {
		close(ch)
	}
	delete(f.subs, clientID)
}

func pruneExpired(toasts []domain.Toast, now time.Time) []domain.Toast {
	live := toasts[:0]
	for _, t := range toasts {
		if t.ExpiresAt.After(now) {
			live = append(live, t)
		}
	}
	return live
}
