package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// NotificationType drives how a notification is displayed.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

const DefaultNotificationTitle = "Notification"

// Notification is a push notification received over the real-time channel.
type Notification struct {
	ID        string           `json:"_id"`
	UserID    string           `json:"userId,omitempty"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	Link      string           `json:"link,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ParseNotificationType normalises s; anything unknown is info.
func ParseNotificationType(s string) NotificationType {
	switch t := NotificationType(strings.ToLower(strings.TrimSpace(s))); t {
	case NotificationSuccess, NotificationWarning, NotificationError, NotificationInfo:
		return t
	}
	return NotificationInfo
}

// ParseNotification decodes a "notification" event payload one field at a
// time. A field with the wrong shape falls back to its default instead of
// failing the whole event, and an undecodable payload still produces a
// notification. newID is called only when the payload carries no id.
func ParseNotification(raw []byte, now time.Time, newID func() string) Notification {
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(raw, &fields)

	str := func(keys ...string) string {
		for _, k := range keys {
			v, ok := fields[k]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(v, &s); err == nil && s != "" {
				return s
			}
		}
		return ""
	}

	n := Notification{
		ID:        str("_id", "id"),
		UserID:    str("userId"),
		Title:     str("title"),
		Message:   str("message", "description"),
		Type:      ParseNotificationType(str("type")),
		Link:      str("link", "url"),
		CreatedAt: now.UTC(),
	}
	if n.ID == "" {
		n.ID = newID()
	}
	if n.Title == "" {
		n.Title = DefaultNotificationTitle
	}
	if ts := str("createdAt"); ts != "" {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			n.CreatedAt = t.UTC()
		}
	}
	return n
}
