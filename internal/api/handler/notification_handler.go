package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
)

// NotificationStore is the per-client notification list.
type NotificationStore interface {
	List(clientID string) []domain.Notification
	MarkRead(clientID, id string) error
	MarkAllRead(clientID string) int
	UnreadCount(clientID string) int
}

// ToastSource yields the client's toasts, current and upcoming.
type ToastSource interface {
	Active(clientID string) []domain.Toast
	Subscribe(clientID string) (<-chan domain.Toast, func())
}

// NotificationHandler serves the notifications pushed to the logged-in
// client and streams its toasts over a websocket.
type NotificationHandler struct {
	notifications NotificationStore
	toasts        ToastSource
	upgrader      websocket.Upgrader
	log           zerolog.Logger
}

func NewNotificationHandler(notifications NotificationStore, toasts ToastSource, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		toasts:        toasts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log,
	}
}

// List returns the client's notifications, newest first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notificationListResponse
// @Failure      401  {object}  errorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	clientID, _, err := ctxClient(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationListResponse{
		Success:     true,
		Data:        h.notifications.List(clientID),
		UnreadCount: h.notifications.UnreadCount(clientID),
	})
}

// MarkRead flags one notification as read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  markReadResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	clientID, _, err := ctxClient(c)
	if err != nil {
		return err
	}

	var p notificationIDParam
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}

	if err := h.notifications.MarkRead(clientID, p.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markReadResponse{
		Success:     true,
		Updated:     1,
		UnreadCount: h.notifications.UnreadCount(clientID),
	})
}

// MarkAllRead flags every notification as read.
//
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  markReadResponse
// @Failure      401  {object}  errorResponse
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	clientID, _, err := ctxClient(c)
	if err != nil {
		return err
	}
	n := h.notifications.MarkAllRead(clientID)
	return c.JSON(http.StatusOK, markReadResponse{Success: true, Updated: n})
}

// Toasts returns the toasts still on screen.
//
// @Summary      Active toasts
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  toastListResponse
// @Failure      401  {object}  errorResponse
// @Router       /notifications/toasts [get]
func (h *NotificationHandler) Toasts(c echo.Context) error {
	clientID, _, err := ctxClient(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toastListResponse{Success: true, Data: h.toasts.Active(clientID)})
}

// Stream upgrades to a websocket and pushes each new toast as a JSON text
// frame. The stream ends when the client disconnects or logs out.
//
// @Summary      Toast stream
// @Tags         notifications
// @Success      101
// @Failure      401  {object}  errorResponse
// @Router       /notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	clientID, _, err := ctxClient(c)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already answered the client.
		h.log.Debug().Err(err).Str("client", clientID).Msg("stream upgrade failed")
		return nil
	}
	defer conn.Close()

	toasts, cancel := h.toasts.Subscribe(clientID)
	defer cancel()

	// The read pump only handles control frames and notices the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	h.log.Debug().Str("client", clientID).Msg("toast stream opened")
	for {
		select {
		case <-gone:
			h.log.Debug().Str("client", clientID).Msg("toast stream closed by client")
			return nil
		case toast, ok := <-toasts:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended")
				_ = conn.WriteMessage(websocket.CloseMessage, msg)
				return nil
			}
			if err := conn.WriteJSON(toast); err != nil {
				h.log.Debug().Err(err).Str("client", clientID).Msg("toast stream write failed")
				return nil
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
