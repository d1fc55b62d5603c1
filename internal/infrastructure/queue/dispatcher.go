package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/talentbridge/portal-gateway/internal/core/ports"
	"github.com/talentbridge/portal-gateway/internal/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Delivery is one raw notification payload received for a client.
type Delivery struct {
	ClientID string
	Payload  []byte
}

// Dispatcher moves socket payloads off the read loops onto a fixed set of
// workers. Sharding on the client id keeps each client's notifications in
// arrival order.
type Dispatcher struct {
	workers []chan Delivery
	target  ports.NotificationDispatcher
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, target ports.NotificationDispatcher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Delivery, numWorkers),
		target:  target,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Delivery, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a delivery to the worker owning its client. It blocks while
// that worker's buffer is full and gives up when ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, del Delivery) error {
	idx := d.shardIndex(del.ClientID)
	select {
	case d.workers[idx] <- del:
		metrics.DeliveryQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Handle matches the socket handler signature so the dispatcher can sit
// directly behind the socket registry.
func (d *Dispatcher) Handle(ctx context.Context, clientID string, payload []byte) {
	if err := d.Enqueue(ctx, Delivery{ClientID: clientID, Payload: payload}); err != nil {
		d.log.Debug().Err(err).Str("client", clientID).Msg("delivery dropped")
	}
}

// shardIndex maps a client id deterministically to a worker index.
func (d *Dispatcher) shardIndex(clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Delivery) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case del, ok := <-ch:
			if !ok {
				return
			}
			metrics.DeliveryQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			n := d.target.Dispatch(del.ClientID, del.Payload)
			d.log.Trace().
				Str("client", del.ClientID).
				Str("notification_id", n.ID).
				Int("worker_id", id).
				Msg("delivery processed")
		}
	}
}
