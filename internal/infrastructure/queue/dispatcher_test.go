package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/core/domain"
	"github.com/talentbridge/portal-gateway/internal/core/service"
)

type recordingTarget struct {
	mu   sync.Mutex
	seen map[string][]string
	done chan struct{}
	want int
}

func (r *recordingTarget) Dispatch(clientID string, payload []byte) domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[clientID] = append(r.seen[clientID], string(payload))
	total := 0
	for _, v := range r.seen {
		total += len(v)
	}
	if total == r.want {
		close(r.done)
	}
	return domain.Notification{ID: string(payload)}
}

func TestDispatcher_PreservesPerClientOrder(t *testing.T) {
	target := &recordingTarget{seen: map[string][]string{}, done: make(chan struct{}), want: 6}
	d := NewDispatcher(3, target, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, p := range []string{"1", "2", "3"} {
		d.Handle(ctx, "alice", []byte(p))
		d.Handle(ctx, "bob", []byte(p))
	}

	select {
	case <-target.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("deliveries not processed")
	}

	target.mu.Lock()
	defer target.mu.Unlock()
	for _, client := range []string{"alice", "bob"} {
		got := target.seen[client]
		if len(got) != 3 || got[0] != "1" || got[1] != "2" || got[2] != "3" {
			t.Fatalf("%s: out of order %v", client, got)
		}
	}
}

func TestDispatcher_EnqueueHonoursContext(t *testing.T) {
	d := NewDispatcher(1, &recordingTarget{seen: map[string][]string{}}, zerolog.Nop())
	// Workers are not started, so the buffer fills up.
	for i := 0; i < channelBuffer; i++ {
		if err := d.Enqueue(context.Background(), Delivery{ClientID: "c"}); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Enqueue(ctx, Delivery{ClientID: "c"}); err == nil {
		t.Fatalf("expected context error on full queue")
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, nil, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected default worker count, got %d", len(d.workers))
	}
	if d.shardIndex("client-42") != d.shardIndex("client-42") {
		t.Fatalf("shard index must be deterministic")
	}
}

func TestDispatcher_QueuedDeliveryDiscardedAfterLogout(t *testing.T) {
	notifications := service.NewNotificationLog(0)
	toasts := service.NewToastFeed(time.Minute)
	target := service.NewNotificationDispatcher(zerolog.Nop(), notifications, toasts)
	sessions := service.TokenObservers{target, notifications, toasts}
	sessions.TokenChanged("c1", "tok-1")
	sessions.TokenChanged("c2", "tok-2")

	// One worker, so c2's delivery is processed strictly after c1's.
	d := NewDispatcher(1, target, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d.Handle(ctx, "c1", []byte(`{"_id":"n1"}`))
	sessions.TokenChanged("c1", "")
	d.Handle(ctx, "c2", []byte(`{"_id":"n2"}`))
	d.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for len(notifications.List("c2")) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("deliveries not processed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := notifications.List("c1"); len(got) != 0 {
		t.Fatalf("logged out client received %+v", got)
	}
	if got := toasts.Active("c1"); len(got) != 0 {
		t.Fatalf("logged out client got toasts %+v", got)
	}
}
