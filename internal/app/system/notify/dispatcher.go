// internal/app/system/notify/dispatcher.go

// Package notify delivers fire-and-forget notifications about workflow
// state changes. Enqueue never blocks the caller and never reports
// delivery failure back to it: a full queue drops the event with a log
// line, a failing sink is logged and counted. Correctness of the approval
// workflow must not depend on anything in this package.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/metrics"
)

// Event types emitted by the approval workflow.
const (
	EventTransactionApproved = "transaction.approved"
	EventTransactionRejected = "transaction.rejected"
	EventCardIssued          = "card.issued"
)

// Event is one notification request.
type Event struct {
	ID         string
	Type       string
	Recipient  string // email address; may be empty (admin-only events)
	Detail     map[string]string
	OccurredAt time.Time
}

// Sink is a delivery backend (SMTP, webhook, ...). Deliver errors are
// logged, never propagated.
type Sink interface {
	Deliver(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to its sinks from a bounded queue.
type Dispatcher struct {
	sinks   []Sink
	queue   chan Event
	log     *zap.Logger
	workers int
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.Mutex // guards closed and the send into queue
	closed bool
}

// New creates a Dispatcher. queueSize bounds how many undelivered events
// are held; beyond that Enqueue drops.
func New(log *zap.Logger, queueSize, workers int, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		sinks:   sinks,
		queue:   make(chan Event, queueSize),
		log:     log,
		workers: workers,
		timeout: 15 * time.Second,
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.run()
	}
	d.log.Info("notification dispatcher started",
		zap.Int("workers", d.workers),
		zap.Int("queue_size", cap(d.queue)))
}

// Stop drains the queue and waits for in-flight deliveries. Safe to call
// more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	d.log.Info("notification dispatcher stopped")
}

// Enqueue submits an event without blocking. Events offered after Stop or
// while the queue is saturated are dropped and counted.
func (d *Dispatcher) Enqueue(eventType, recipient string, detail map[string]string) {
	ev := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Recipient:  recipient,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		metrics.NotificationFailures.Inc()
		d.log.Warn("notification dispatcher stopped, dropping event",
			zap.String("event_id", ev.ID),
			zap.String("type", ev.Type))
		return
	}
	select {
	case d.queue <- ev:
		metrics.NotificationsEnqueued.Inc()
	default:
		metrics.NotificationFailures.Inc()
		d.log.Warn("notification queue full, dropping event",
			zap.String("event_id", ev.ID),
			zap.String("type", ev.Type))
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := sink.Deliver(ctx, ev)
		cancel()
		if err != nil {
			metrics.NotificationFailures.Inc()
			d.log.Error("notification delivery failed",
				zap.String("event_id", ev.ID),
				zap.String("type", ev.Type),
				zap.String("recipient", ev.Recipient),
				zap.Error(err))
		}
	}
}
