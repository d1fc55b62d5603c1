package domain

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedID() string { return "generated" }

func TestParseNotification_MinimalPayload(t *testing.T) {
	n := ParseNotification([]byte(`{"_id":"n1"}`), fixedNow, fixedID)

	if n.ID != "n1" {
		t.Fatalf("expected id n1, got %q", n.ID)
	}
	if n.Title != "Notification" {
		t.Fatalf("expected default title, got %q", n.Title)
	}
	if n.Type != NotificationInfo {
		t.Fatalf("expected info type, got %q", n.Type)
	}
	if n.Read {
		t.Fatalf("new notification must be unread")
	}
	if !n.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected createdAt to default to now, got %v", n.CreatedAt)
	}
}

func TestParseNotification_Aliases(t *testing.T) {
	raw := `{"id":"n2","description":"Interview booked","url":"/candidate/jobs/7","type":"SUCCESS","userId":"u1","createdAt":"2026-02-28T09:30:00Z"}`
	n := ParseNotification([]byte(raw), fixedNow, fixedID)

	if n.ID != "n2" || n.UserID != "u1" {
		t.Fatalf("unexpected ids: %+v", n)
	}
	if n.Message != "Interview booked" {
		t.Fatalf("description should fill message, got %q", n.Message)
	}
	if n.Link != "/candidate/jobs/7" {
		t.Fatalf("url should fill link, got %q", n.Link)
	}
	if n.Type != NotificationSuccess {
		t.Fatalf("expected success, got %q", n.Type)
	}
	want := time.Date(2026, 2, 28, 9, 30, 0, 0, time.UTC)
	if !n.CreatedAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, n.CreatedAt)
	}
}

func TestParseNotification_WrongFieldTypesFallBack(t *testing.T) {
	raw := `{"_id":"n3","title":42,"message":"still here","type":["error"],"createdAt":"yesterday"}`
	n := ParseNotification([]byte(raw), fixedNow, fixedID)

	if n.Title != DefaultNotificationTitle {
		t.Fatalf("expected default title, got %q", n.Title)
	}
	if n.Message != "still here" {
		t.Fatalf("valid fields must survive, got %q", n.Message)
	}
	if n.Type != NotificationInfo {
		t.Fatalf("expected info, got %q", n.Type)
	}
	if !n.CreatedAt.Equal(fixedNow) {
		t.Fatalf("bad createdAt should default to now")
	}
}

func TestParseNotification_GarbageStillProducesEvent(t *testing.T) {
	n := ParseNotification([]byte(`{not json`), fixedNow, fixedID)

	if n.ID != "generated" {
		t.Fatalf("expected generated id, got %q", n.ID)
	}
	if n.Title != DefaultNotificationTitle || n.Type != NotificationInfo {
		t.Fatalf("unexpected defaults: %+v", n)
	}
}

func TestToastTreatment_DistinctPerType(t *testing.T) {
	seen := map[string]NotificationType{}
	for _, typ := range []NotificationType{NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError} {
		v := ToastTreatmentFor(typ).Variant
		if other, dup := seen[v]; dup {
			t.Fatalf("%s and %s share variant %q", typ, other, v)
		}
		seen[v] = typ
	}
	if ToastTreatmentFor("bogus").Variant != ToastTreatmentFor(NotificationInfo).Variant {
		t.Fatalf("unknown types should look like info")
	}
}

func TestNewToast_ErrorsStayLonger(t *testing.T) {
	info := NewToast(Notification{ID: "a", Type: NotificationInfo}, "t1", 4*time.Second, fixedNow)
	errT := NewToast(Notification{ID: "b", Type: NotificationError}, "t2", 4*time.Second, fixedNow)

	if info.DismissAfterMs != 4000 {
		t.Fatalf("expected 4000ms, got %d", info.DismissAfterMs)
	}
	if errT.DismissAfterMs <= info.DismissAfterMs {
		t.Fatalf("error toast should outlive info toast")
	}
	if !errT.ExpiresAt.Equal(fixedNow.Add(8 * time.Second)) {
		t.Fatalf("unexpected expiry %v", errT.ExpiresAt)
	}
}
