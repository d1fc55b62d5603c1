package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/api/middleware"
	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/service"
)

func seededLog(clientID string, ids ...string) *service.NotificationLog {
	log := service.NewNotificationLog(10)
	for _, id := range ids {
		log.OnNotification(clientID, domain.Notification{ID: id, Title: "T-" + id, Type: domain.NotificationInfo})
	}
	return log
}

func TestNotificationHandler_List(t *testing.T) {
	e := newEcho()
	h := NewNotificationHandler(seededLog("client-1", "n1", "n2"), service.NewToastFeed(time.Second), zerolog.Nop())
	c, rec := newRequest(e, http.MethodGet, "/notifications", "", newStore(t, domain.RoleCandidate))

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	data, _ := resp["data"].([]any)
	if len(data) != 2 || resp["unreadCount"] != float64(2) {
		t.Fatalf("unexpected list: %v", resp)
	}
	if first, _ := data[0].(map[string]any); first["id"] != "n2" {
		t.Fatalf("expected newest first, got %v", data[0])
	}
}

func TestNotificationHandler_RequiresLogin(t *testing.T) {
	e := newEcho()
	h := NewNotificationHandler(seededLog("client-1", "n1"), service.NewToastFeed(time.Second), zerolog.Nop())
	c, _ := newRequest(e, http.MethodGet, "/notifications", "", newStore(t, ""))

	if err := h.List(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	e := newEcho()
	log := seededLog("client-1", "n1", "n2")
	h := NewNotificationHandler(log, service.NewToastFeed(time.Second), zerolog.Nop())

	c, rec := newRequest(e, http.MethodPost, "/notifications/n1/read", "", newStore(t, domain.RoleEmployee))
	c.SetParamNames("id")
	c.SetParamValues("n1")
	if err := h.MarkRead(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode(t, rec)["unreadCount"] != float64(1) {
		t.Fatalf("expected one unread left, got %s", rec.Body.String())
	}

	c, _ = newRequest(e, http.MethodPost, "/notifications/missing/read", "", newStore(t, domain.RoleEmployee))
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.MarkRead(c); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	e := newEcho()
	log := seededLog("client-1", "n1", "n2", "n3")
	h := NewNotificationHandler(log, service.NewToastFeed(time.Second), zerolog.Nop())
	c, rec := newRequest(e, http.MethodPost, "/notifications/read-all", "", newStore(t, domain.RoleAdmin))

	if err := h.MarkAllRead(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode(t, rec)["updated"] != float64(3) || log.UnreadCount("client-1") != 0 {
		t.Fatalf("unexpected result %s", rec.Body.String())
	}
}

func TestNotificationHandler_Toasts(t *testing.T) {
	e := newEcho()
	feed := service.NewToastFeed(time.Minute)
	feed.OnNotification("client-1", domain.Notification{ID: "n1", Title: "Saved", Type: domain.NotificationWarning})
	h := NewNotificationHandler(service.NewNotificationLog(10), feed, zerolog.Nop())
	c, rec := newRequest(e, http.MethodGet, "/notifications/toasts", "", newStore(t, domain.RoleAdmin))

	if err := h.Toasts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	data, _ := decode(t, rec)["data"].([]any)
	if len(data) != 1 || data[0].(map[string]any)["variant"] != "toast-warning" {
		t.Fatalf("unexpected toasts %s", rec.Body.String())
	}
}

func TestNotificationHandler_Stream(t *testing.T) {
	feed := service.NewToastFeed(time.Minute)
	h := NewNotificationHandler(service.NewNotificationLog(10), feed, zerolog.Nop())
	store := newStore(t, domain.RoleCandidate)

	e := newEcho()
	e.GET("/notifications/stream", h.Stream, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.SessionContextKey, store)
			return next(c)
		}
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/notifications/stream"
	conn, _, err := websocket.DefaultDialer.DialContext(context.Background(), url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The subscription is registered after the upgrade; retry until it lands.
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	received := make(chan domain.Toast, 1)
	go func() {
		var toast domain.Toast
		if err := conn.ReadJSON(&toast); err == nil {
			received <- toast
		}
	}()

	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case toast := <-received:
			if toast.NotificationID != "n1" || toast.Variant != "toast-error" {
				t.Fatalf("unexpected toast %+v", toast)
			}
			return
		case <-tick.C:
			feed.OnNotification("client-1", domain.Notification{ID: "n1", Type: domain.NotificationError})
		case <-deadline:
			t.Fatalf("no toast streamed")
		}
	}
}

func TestNotificationHandler_StreamEndsOnLogout(t *testing.T) {
	feed := service.NewToastFeed(time.Minute)
	h := NewNotificationHandler(service.NewNotificationLog(10), feed, zerolog.Nop())
	store := newStore(t, domain.RoleCandidate)

	e := newEcho()
	e.GET("/stream", h.Stream, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.SessionContextKey, store)
			return next(c)
		}
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	closed := make(chan error, 1)
	go func() {
		_, _, err := conn.ReadMessage()
		closed <- err
	}()

	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case err := <-closed:
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("expected a normal close, got %v", err)
			}
			return
		case <-tick.C:
			feed.TokenChanged("client-1", "")
		case <-deadline:
			t.Fatalf("stream not closed after logout")
		}
	}
}
