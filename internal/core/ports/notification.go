package ports

import "github.com/talentbridge/portal-gateway/internal/core/domain"

// NotificationObserver receives every notification dispatched to a client.
type NotificationObserver interface {
	OnNotification(clientID string, n domain.Notification)
}

// NotificationDispatcher turns a raw "notification" event payload into a
// Notification and fans it out to its observers.
type NotificationDispatcher interface {
	Dispatch(clientID string, payload []byte) domain.Notification
}
