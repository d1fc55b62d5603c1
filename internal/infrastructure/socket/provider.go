package socket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/metrics"
)

// NotificationEvent is the only upstream event that is dispatched.
const NotificationEvent = "notification"

// Handler receives the data of every notification event. It must return
// once ctx is done.
type Handler func(ctx context.Context, clientID string, payload []byte)

// frame is the envelope of every upstream message.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Provider owns the upstream connection of one client. There is at most one
// connection at a time: a token change fully closes the old connection
// before dialing the new one, and no token means no connection.
type Provider struct {
	clientID string
	dialer   Dialer
	handler  Handler
	backoff  Backoff
	log      zerolog.Logger

	mu     sync.Mutex
	token  string
	run    *connection
	closed bool
}

// NewProvider returns an idle provider for clientID.
func NewProvider(clientID string, dialer Dialer, handler Handler, backoff Backoff, log zerolog.Logger) *Provider {
	return &Provider{
		clientID: clientID,
		dialer:   dialer,
		handler:  handler,
		backoff:  backoff,
		log:      log.With().Str("client", clientID).Logger(),
	}
}

// Token returns the token the provider is currently bound to.
func (p *Provider) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

// SetToken binds the provider to token. The same token is a no-op; any
// other value first tears the current connection down and waits for it.
func (p *Provider) SetToken(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || token == p.token {
		return
	}
	if p.run != nil {
		p.run.stop()
		p.run = nil
	}
	p.token = token
	if token == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &connection{token: token, cancel: cancel, done: make(chan struct{})}
	p.run = c
	go p.loop(ctx, c)
}

// Close tears the connection down for good.
func (p *Provider) Close() {
	p.SetToken("")
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

func (p *Provider) loop(ctx context.Context, c *connection) {
	defer close(c.done)

	attempt := 0
	for {
		conn, err := p.dialer.Dial(ctx, c.token)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.SocketConnectAttemptsTotal.WithLabelValues("error").Inc()
			p.log.Warn().Err(err).Int("attempt", attempt).Msg("socket connect failed")
			if !p.wait(ctx, attempt) {
				return
			}
			attempt++
			continue
		}
		metrics.SocketConnectAttemptsTotal.WithLabelValues("ok").Inc()

		if !c.attach(conn) {
			_ = conn.Close()
			return
		}
		metrics.SocketConnectionsActive.Inc()
		p.log.Info().Msg("socket connected")
		attempt = 0

		err = p.read(ctx, conn)

		c.detach()
		_ = conn.Close()
		metrics.SocketConnectionsActive.Dec()

		if ctx.Err() != nil {
			p.log.Info().Msg("socket closed")
			return
		}
		p.log.Warn().Err(err).Msg("socket disconnected")
		if !p.wait(ctx, attempt) {
			return
		}
		attempt++
	}
}

// read pumps frames until the connection fails.
func (p *Provider) read(ctx context.Context, conn Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			p.log.Warn().Err(err).Msg("socket frame is not json, ignored")
			continue
		}
		if f.Event != NotificationEvent {
			p.log.Debug().Str("event", f.Event).Msg("socket event ignored")
			continue
		}
		p.handler(ctx, p.clientID, f.Data)
	}
}

// wait sleeps before retry attempt and reports whether to retry at all.
func (p *Provider) wait(ctx context.Context, attempt int) bool {
	if p.backoff.Exhausted(attempt) {
		p.log.Error().Int("attempts", attempt).Msg("socket retries exhausted, waiting for a new token")
		return false
	}
	t := time.NewTimer(p.backoff.Delay(attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// connection is one token's connection lifetime, including reconnects.
type connection struct {
	token  string
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	conn    Conn
	stopped bool
}

func (c *connection) attach(conn Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return false
	}
	c.conn = conn
	return true
}

func (c *connection) detach() {
	c.mu.Lock()
	c.conn = nil
	c.mu.Unlock()
}

// stop cancels the lifetime, unblocks any pending read and waits for the
// loop to exit, so the connection is gone when stop returns.
func (c *connection) stop() {
	c.cancel()
	c.mu.Lock()
	c.stopped = true
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.mu.Unlock()
	<-c.done
}
