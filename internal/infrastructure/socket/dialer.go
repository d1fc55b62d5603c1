// Package socket keeps one upstream real-time connection per authenticated
// client and hands the events it receives to a handler.
package socket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const closeGrace = time.Second

// Conn is a live upstream connection.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer opens an upstream connection authenticated with token.
type Dialer interface {
	Dial(ctx context.Context, token string) (Conn, error)
}

// WebsocketDialer dials the backend socket server with gorilla/websocket.
// The token travels both as a bearer header and as a "token" query
// parameter, since socket servers differ in where they look.
type WebsocketDialer struct {
	url    *url.URL
	dialer *websocket.Dialer
}

// NewWebsocketDialer validates rawURL (ws or wss).
func NewWebsocketDialer(rawURL string, handshakeTimeout time.Duration) (*WebsocketDialer, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("socket: parse url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("socket: url must be ws(s), got %q", rawURL)
	}
	d := *websocket.DefaultDialer
	if handshakeTimeout > 0 {
		d.HandshakeTimeout = handshakeTimeout
	}
	return &WebsocketDialer{url: u, dialer: &d}, nil
}

func (w *WebsocketDialer) Dial(ctx context.Context, token string) (Conn, error) {
	u := *w.url
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := w.dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("socket: handshake status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("socket: dial: %w", err)
	}
	return &wsConn{Conn: conn}, nil
}

// wsConn sends a close frame before dropping the connection.
type wsConn struct {
	*websocket.Conn
}

func (c *wsConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
	return c.Conn.Close()
}
