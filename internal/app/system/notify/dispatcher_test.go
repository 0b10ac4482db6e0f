package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/notify"
)

// recordingSink captures delivered events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []notify.Event
	fail   bool
}

func (s *recordingSink) Deliver(_ context.Context, ev notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("delivery failed")
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) delivered() []notify.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Event, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversToSink(t *testing.T) {
	sink := &recordingSink{}
	d := notify.New(zap.NewNop(), 16, 2, sink)
	d.Start()

	d.Enqueue(notify.EventCardIssued, "member@test.org", map[string]string{
		"membership_number": "MWSS-M0001",
	})
	d.Stop() // drains the queue

	events := sink.delivered()
	if len(events) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != notify.EventCardIssued {
		t.Errorf("type: got %q", ev.Type)
	}
	if ev.Recipient != "member@test.org" {
		t.Errorf("recipient: got %q", ev.Recipient)
	}
	if ev.Detail["membership_number"] != "MWSS-M0001" {
		t.Errorf("detail: got %v", ev.Detail)
	}
	if ev.ID == "" || ev.OccurredAt.IsZero() {
		t.Error("expected id and occurred_at to be stamped")
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// No workers started: the queue fills and further events are dropped.
	d := notify.New(zap.NewNop(), 2, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			d.Enqueue(notify.EventTransactionApproved, "payer@test.org", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Enqueue blocked on a saturated queue")
	}
}

func TestDispatcher_SinkFailureDoesNotStopOthers(t *testing.T) {
	failing := &recordingSink{fail: true}
	working := &recordingSink{}
	d := notify.New(zap.NewNop(), 16, 1, failing, working)
	d.Start()

	d.Enqueue(notify.EventTransactionRejected, "payer@test.org", nil)
	d.Stop()

	if got := len(working.delivered()); got != 1 {
		t.Errorf("working sink deliveries: got %d, want 1", got)
	}
}

func TestDispatcher_EnqueueAfterStopIsDropped(t *testing.T) {
	sink := &recordingSink{}
	d := notify.New(zap.NewNop(), 16, 1, sink)
	d.Start()
	d.Stop()

	// A caller that outlives the dispatcher must never crash the process;
	// the event is dropped.
	d.Enqueue(notify.EventTransactionApproved, "payer@test.org", nil)

	if got := len(sink.delivered()); got != 0 {
		t.Errorf("deliveries after stop: got %d, want 0", got)
	}
	// Stop is idempotent.
	d.Stop()
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	sink := &recordingSink{}
	d := notify.New(zap.NewNop(), 64, 1, sink)
	d.Start()

	for i := 0; i < 20; i++ {
		d.Enqueue(notify.EventTransactionApproved, "payer@test.org", nil)
	}
	d.Stop()

	if got := len(sink.delivered()); got != 20 {
		t.Errorf("delivered: got %d, want 20", got)
	}
}
