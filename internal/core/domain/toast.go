package domain

import "time"

// Toast is a transient, auto-dismissing display of a notification.
type Toast struct {
	ID             string           `json:"id"`
	NotificationID string           `json:"notificationId"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message,omitempty"`
	Link           string           `json:"link,omitempty"`
	Variant        string           `json:"variant"`
	Icon           string           `json:"icon"`
	DismissAfterMs int64            `json:"dismissAfterMs"`
	ExpiresAt      time.Time        `json:"expiresAt"`
}

// ToastTreatment is the visual treatment of a toast for one notification type.
type ToastTreatment struct {
	Variant string
	Icon    string
	// DurationFactor scales the configured toast TTL. Errors stay longer.
	DurationFactor float64
}

var toastTreatments = map[NotificationType]ToastTreatment{
	NotificationSuccess: {Variant: "toast-success", Icon: "check-circle", DurationFactor: 1},
	NotificationError:   {Variant: "toast-error", Icon: "x-circle", DurationFactor: 2},
	NotificationWarning: {Variant: "toast-warning", Icon: "alert-triangle", DurationFactor: 1.5},
	NotificationInfo:    {Variant: "toast-info", Icon: "info", DurationFactor: 1},
}

// ToastTreatmentFor returns the treatment for t; unknown types get info.
func ToastTreatmentFor(t NotificationType) ToastTreatment {
	if tr, ok := toastTreatments[t]; ok {
		return tr
	}
	return toastTreatments[NotificationInfo]
}

// NewToast builds the toast shown for n. ttl is the base display time.
func NewToast(n Notification, id string, ttl time.Duration, now time.Time) Toast {
	tr := ToastTreatmentFor(n.Type)
	d := time.Duration(float64(ttl) * tr.DurationFactor)
	return Toast{
		ID:             id,
		NotificationID: n.ID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		Link:           n.Link,
		Variant:        tr.Variant,
		Icon:           tr.Icon,
		DismissAfterMs: d.Milliseconds(),
		ExpiresAt:      now.Add(d),
	}
}
