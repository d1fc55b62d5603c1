package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/ports"
	"github.com/talentbridge/portal-gateway/internal/metrics"
)

// NotificationDispatcher is the single fan-out point for pushed
// notifications. It only delivers to clients that currently hold a token;
// it learns that as a TokenObserver.
type NotificationDispatcher struct {
	observers []ports.NotificationObserver
	log       zerolog.Logger
	now       func() time.Time

	// mu is held for reading across a whole fan-out, so a logout waits for
	// an in-flight delivery before the client's state is dropped.
	mu   sync.RWMutex
	live map[string]struct{}
}

// NewNotificationDispatcher calls observers in the given order; register
// the log before the toast feed so a toast never points at a notification
// the client cannot list yet. Register the dispatcher as a TokenObserver
// ahead of the log and the toast feed.
func NewNotificationDispatcher(log zerolog.Logger, observers ...ports.NotificationObserver) *NotificationDispatcher {
	return &NotificationDispatcher{
		observers: observers,
		log:       log,
		now:       time.Now,
		live:      make(map[string]struct{}),
	}
}

// Dispatch parses payload defensively and hands the notification to every
// observer. Malformed payloads are still delivered. Payloads for a client
// without a session are discarded and the zero Notification is returned.
func (d *NotificationDispatcher) Dispatch(clientID string, payload []byte) domain.Notification {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.live[clientID]; !ok {
		metrics.NotificationsDiscardedTotal.Inc()
		d.log.Debug().Str("client", clientID).Msg("notification for ended session discarded")
		return domain.Notification{}
	}

	n := domain.ParseNotification(payload, d.now(), uuid.NewString)
	for _, obs := range d.observers {
		obs.OnNotification(clientID, n)
	}
	metrics.NotificationsDispatchedTotal.WithLabelValues(string(n.Type)).Inc()

	d.log.Debug().
		Str("client", clientID).
		Str("notification_id", n.ID).
		Str("type", string(n.Type)).
		Msg("notification dispatched")

	return n
}

// TokenChanged opens delivery for a client with a token and closes it on
// logout.
func (d *NotificationDispatcher) TokenChanged(clientID, token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if token == "" {
		delete(d.live, clientID)
		return
	}
	d.live[clientID] = struct{}{}
}
