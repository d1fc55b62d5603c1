package service

import (
	"sync"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
)

const defaultLogCapacity = 100

// NotificationLog keeps each client's notifications in memory, newest
// first. When a client exceeds capacity the oldest entries are evicted.
// Read state is local to the gateway and never sent to the backend.
type NotificationLog struct {
	capacity int

	mu      sync.RWMutex
	entries map[string][]domain.Notification
}

// NewNotificationLog returns an empty log. capacity <= 0 uses the default.
func NewNotificationLog(capacity int) *NotificationLog {
	if capacity <= 0 {
		capacity = defaultLogCapacity
	}
	return &NotificationLog{
		capacity: capacity,
		entries:  make(map[string][]domain.Notification),
	}
}

// OnNotification prepends n to the client's list as unread.
func (l *NotificationLog) OnNotification(clientID string, n domain.Notification) {
	n.Read = false

	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.entries[clientID]
	next := make([]domain.Notification, 0, min(len(cur)+1, l.capacity))
	next = append(next, n)
	for _, e := range cur {
		if len(next) == l.capacity {
			break
		}
		next = append(next, e)
	}
	l.entries[clientID] = next
}

// List returns a copy of the client's notifications, newest first.
func (l *NotificationLog) List(clientID string) []domain.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Notification, len(l.entries[clientID]))
	copy(out, l.entries[clientID])
	return out
}

// MarkRead flags one notification as read.
func (l *NotificationLog) MarkRead(clientID, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries[clientID] {
		if l.entries[clientID][i].ID == id {
			l.entries[clientID][i].Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

// MarkAllRead flags every notification as read and returns how many changed.
func (l *NotificationLog) MarkAllRead(clientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	changed := 0
	for i := range l.entries[clientID] {
		if !l.entries[clientID][i].Read {
			l.entries[clientID][i].Read = true
			changed++
		}
	}
	return changed
}

// UnreadCount returns the number of unread notifications.
func (l *NotificationLog) UnreadCount(clientID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, e := range l.entries[clientID] {
		if !e.Read {
			n++
		}
	}
	return n
}

// Drop forgets everything stored for the client.
func (l *NotificationLog) Drop(clientID string) {
	l.mu.Lock()
	delete(l.entries, clientID)
	l.mu.Unlock()
}

// TokenChanged drops the client's notifications when it logs out.
func (l *NotificationLog) TokenChanged(clientID, token string) {
	if token == "" {
		l.Drop(clientID)
	}
}
